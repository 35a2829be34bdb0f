package parser

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// evalContext is the expression context for HCL definitions. It exposes a
// few constants and the cty standard library functions useful for building
// series data, e.g. x = range(0, 10).
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"pi": cty.NumberFloatVal(math.Pi),
			"e":  cty.NumberFloatVal(math.E),
		},
		Functions: map[string]function.Function{
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"abs":    stdlib.AbsoluteFunc,
			"floor":  stdlib.FloorFunc,
			"ceil":   stdlib.CeilFunc,
			"concat": stdlib.ConcatFunc,
			"length": stdlib.LengthFunc,
			"range":  stdlib.RangeFunc,
			"format": stdlib.FormatFunc,
			"join":   stdlib.JoinFunc,
		},
	}
}

// ParseHCL decodes an HCL figure definition. filename is used in
// diagnostics only.
func ParseHCL(src []byte, filename string) (*FigureSpec, error) {
	parser := hclparse.NewParser()

	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("HCL parse errors: %s", diags.Error())
	}

	var spec FigureSpec
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &spec); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode figure definition: %s", diags.Error())
	}

	return &spec, nil
}
