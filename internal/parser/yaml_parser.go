package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML figure definition. Unknown fields are rejected
// and an empty document is an error.
func ParseYAML(src []byte) (*FigureSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var spec FigureSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML figure definition: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML figure definition: %w", err)
	}
	return &spec, nil
}
