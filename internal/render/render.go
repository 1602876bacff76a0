package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"

	"github.com/voglerr/eventplan/internal/assemble"
	"github.com/voglerr/eventplan/internal/config"
	"github.com/voglerr/eventplan/internal/outputs"
)

// Plan is the serializable form of an assembled graph: resources in apply
// order plus the projected output contract.
type Plan struct {
	Pipeline  string         `json:"pipeline" yaml:"pipeline"`
	Resources []Resource     `json:"resources" yaml:"resources"`
	Outputs   map[string]any `json:"outputs" yaml:"outputs"`
}

// Resource is one graph node in serializable form.
type Resource struct {
	ID         string         `json:"id" yaml:"id"`
	Kind       string         `json:"kind" yaml:"kind"`
	DependsOn  []string       `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
	Attributes map[string]any `json:"attributes" yaml:"attributes"`
}

// NewPlan converts the graph and outputs into a Plan. Conversion cannot fail:
// every attribute value was constructed from known, concrete cty values.
func NewPlan(cfg *config.Pipeline, g *assemble.Graph, outs map[string]cty.Value) *Plan {
	plan := &Plan{
		Pipeline:  cfg.Name,
		Resources: make([]Resource, 0, g.Len()),
		Outputs:   make(map[string]any, len(outs)),
	}

	for _, n := range g.Nodes() {
		deps := make([]string, len(n.DependsOn))
		for i, dep := range n.DependsOn {
			deps[i] = string(dep)
		}
		plan.Resources = append(plan.Resources, Resource{
			ID:         string(n.ID),
			Kind:       string(n.Kind),
			DependsOn:  deps,
			Attributes: ctyToGo(n.Attributes).(map[string]any),
		})
	}

	for _, name := range outputs.Names {
		plan.Outputs[name] = ctyToGo(outs[name])
	}

	return plan
}

// Encode writes the plan to w in the requested format.
func (p *Plan) Encode(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(p)
	default:
		return fmt.Errorf("unsupported plan format %q", format)
	}
}

// ctyToGo converts a concrete cty value into plain Go values suitable for
// the JSON and YAML encoders. Null becomes nil, whole numbers stay integers.
func ctyToGo(v cty.Value) any {
	if v == cty.NilVal || v.IsNull() {
		return nil
	}

	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Bool:
		return v.True()
	case t == cty.Number:
		f := v.AsBigFloat()
		if i, acc := f.Int64(); acc == 0 {
			return i
		}
		out, _ := f.Float64()
		return out
	case t.IsListType() || t.IsSetType() || t.IsTupleType():
		items := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			items = append(items, ctyToGo(ev))
		}
		return items
	case t.IsMapType() || t.IsObjectType():
		items := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			kv, ev := it.Element()
			items[kv.AsString()] = ctyToGo(ev)
		}
		return items
	default:
		panic(fmt.Sprintf("render: unsupported value type %s", t.FriendlyName()))
	}
}
