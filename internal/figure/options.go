package figure

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Bounding-box modes.
const (
	BBoxTight    = "tight"
	BBoxStandard = "standard"
)

// SaveOptions is the typed view of a save-option bag.
type SaveOptions struct {
	DPI         float64           `mapstructure:"dpi"`
	BBoxInches  string            `mapstructure:"bbox_inches"`
	PadInches   float64           `mapstructure:"pad_inches"`
	Transparent bool              `mapstructure:"transparent"`
	Facecolor   string            `mapstructure:"facecolor"`
	Edgecolor   string            `mapstructure:"edgecolor"`
	Quality     int               `mapstructure:"quality"`
	Metadata    map[string]string `mapstructure:"metadata"`

	// Extra holds entries no printer recognises.
	Extra map[string]any `mapstructure:",remain"`
}

// DecodeSaveOptions converts a save-option bag into SaveOptions. Values are
// weakly typed so that integers, floats and numeric strings are all accepted
// for numeric options.
func DecodeSaveOptions(bag map[string]any) (SaveOptions, error) {
	opts := SaveOptions{
		DPI:        100,
		BBoxInches: BBoxStandard,
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &opts,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return SaveOptions{}, err
	}
	if err := dec.Decode(bag); err != nil {
		return SaveOptions{}, fmt.Errorf("invalid save options: %w", err)
	}

	if opts.DPI <= 0 {
		return SaveOptions{}, fmt.Errorf("invalid save options: dpi must be positive, got %v", opts.DPI)
	}
	if opts.BBoxInches == "" {
		opts.BBoxInches = BBoxStandard
	}
	if opts.BBoxInches != BBoxTight && opts.BBoxInches != BBoxStandard {
		return SaveOptions{}, fmt.Errorf("invalid save options: bbox_inches must be %q or %q, got %q", BBoxTight, BBoxStandard, opts.BBoxInches)
	}
	if opts.PadInches < 0 {
		return SaveOptions{}, fmt.Errorf("invalid save options: pad_inches must not be negative")
	}
	return opts, nil
}
