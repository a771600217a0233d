package catalog

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/dshills/curriculum-go/graph"
)

// hclCatalogFile is the top-level structure of an HCL catalog.
type hclCatalogFile struct {
	Courses []*hclCourse `hcl:"course,block"`
}

type hclCourse struct {
	ID            string         `hcl:"id,label"`
	Prerequisites hcl.Expression `hcl:"prerequisites,optional"`
}

func parseHCL(data []byte, filename string) ([]graph.CourseSpec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %w", diags)
	}

	var parsed hclCatalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %w", diags)
	}

	specs := make([]graph.CourseSpec, 0, len(parsed.Courses))
	for _, c := range parsed.Courses {
		prereqs, diags := prerequisitesFromExpr(c.Prerequisites)
		if diags.HasErrors() {
			return nil, fmt.Errorf("course %q: %w", c.ID, diags)
		}
		specs = append(specs, graph.CourseSpec{ID: c.ID, Prerequisites: prereqs})
	}
	return specs, nil
}

// prerequisitesFromExpr accepts a list of strings or one comma-separated
// string. An absent attribute evaluates to null and yields no prerequisites.
func prerequisitesFromExpr(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return ParsePrerequisites(val.AsString()), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var out []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if elem.IsNull() || elem.Type() != cty.String {
				return nil, hcl.Diagnostics{{
					Severity: hcl.DiagError,
					Summary:  "Invalid prerequisite",
					Detail:   "Each prerequisite must be a course id string.",
					Subject:  expr.Range().Ptr(),
				}}
			}
			out = append(out, elem.AsString())
		}
		return normalize(out), nil
	default:
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid prerequisites",
			Detail:   "prerequisites must be a list of course ids or a comma-separated string.",
			Subject:  expr.Range().Ptr(),
		}}
	}
}
