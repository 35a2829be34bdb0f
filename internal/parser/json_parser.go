package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseJSON decodes a JSON figure definition. Unknown fields are rejected.
func ParseJSON(src []byte) (*FigureSpec, error) {
	dec := json.NewDecoder(bytes.NewReader(src))
	dec.DisallowUnknownFields()

	var spec FigureSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to parse JSON figure definition: %w", err)
	}
	return &spec, nil
}
