package parser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// Loader reads figure definition files and resolves their remote data.
type Loader struct {
	Client *retryablehttp.Client
}

// NewLoader creates a loader with a retrying HTTP client.
func NewLoader() *Loader {
	return &Loader{Client: newHTTPClient()}
}

// Load reads a definition file, chosen by extension (.hcl, .json, .yaml),
// fetches data_url series and validates the result.
func (l *Loader) Load(ctx context.Context, path string) (*FigureSpec, error) {
	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read figure definition: %w", err)
	}

	var spec *FigureSpec
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		spec, err = ParseHCL(src, path)
	case ".json":
		spec, err = ParseJSON(src)
	case ".yaml", ".yml":
		spec, err = ParseYAML(src)
	default:
		return nil, fmt.Errorf("unsupported figure definition extension %q (expected .hcl, .json or .yaml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := l.Prepare(ctx, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Prepare resolves remote data and validates an in-memory definition.
func (l *Loader) Prepare(ctx context.Context, spec *FigureSpec) error {
	if err := ResolveRemoteData(ctx, l.Client, spec); err != nil {
		return err
	}
	if err := Validate(spec); err != nil {
		return fmt.Errorf("invalid figure definition: %w", err)
	}
	return nil
}
