package export

import "fmt"

// WarningKind classifies recoverable conditions met during an export.
type WarningKind int

const (
	// WarnUnsupportedFormat: the canvas cannot encode the format; it was skipped.
	WarnUnsupportedFormat WarningKind = iota
	// WarnInvalidQuality: JPEG quality outside 1-100; default quality used.
	WarnInvalidQuality
	// WarnQualityUnsupported: the JPEG encoder ignores quality; default used.
	WarnQualityUnsupported
	// WarnQualityUnverifiable: quality support could not be determined; default used.
	WarnQualityUnverifiable
)

func (k WarningKind) String() string {
	switch k {
	case WarnUnsupportedFormat:
		return "unsupported_format"
	case WarnInvalidQuality:
		return "invalid_quality"
	case WarnQualityUnsupported:
		return "quality_unsupported"
	case WarnQualityUnverifiable:
		return "quality_unverifiable"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning describes a recoverable condition. Warnings never abort a call.
type Warning struct {
	Kind    WarningKind
	Format  string
	Message string
}

func (w Warning) String() string {
	return w.Message
}
