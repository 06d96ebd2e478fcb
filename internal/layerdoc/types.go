package layerdoc

import "fmt"

// Layer is one declared node of a delegation chain.
type Layer struct {
	// Name uniquely identifies the layer within the document.
	Name string `yaml:"name" json:"name"`

	// Parent names the layer this one delegates to. Forward references
	// are allowed; empty means parentless.
	Parent string `yaml:"parent,omitempty" json:"parent,omitempty"`

	// Properties are set on the built store.
	Properties map[string]any `yaml:"properties,omitempty" json:"properties,omitempty"`

	// Deleted names are tombstoned after Properties are applied.
	Deleted []string `yaml:"deleted,omitempty" json:"deleted,omitempty"`

	// Frozen freezes the built store once all parents are wired.
	Frozen bool `yaml:"frozen,omitempty" json:"frozen,omitempty"`
}

// Document is a parsed layer document. Layers keeps declaration order,
// which consumers use for deterministic enumeration.
type Document struct {
	Layers []Layer `yaml:"layers" json:"layers"`
}

// Validate checks structural consistency: every layer named, names
// unique, every parent reference resolvable. Collects all violations
// rather than stopping at the first.
func (d *Document) Validate() []*DocError {
	var errs []*DocError

	names := make(map[string]struct{}, len(d.Layers))
	for i, l := range d.Layers {
		if l.Name == "" {
			errs = append(errs, &DocError{
				Code:    CodeEmptyName,
				Message: fmt.Sprintf("layer %d has no name", i),
			})
			continue
		}
		if _, dup := names[l.Name]; dup {
			errs = append(errs, &DocError{
				Code:    CodeDuplicate,
				Message: fmt.Sprintf("layer %q declared more than once", l.Name),
			})
			continue
		}
		names[l.Name] = struct{}{}
	}

	for _, l := range d.Layers {
		if l.Parent == "" {
			continue
		}
		if _, ok := names[l.Parent]; !ok {
			errs = append(errs, &DocError{
				Code:    CodeUnknownParent,
				Message: fmt.Sprintf("layer %q delegates to undeclared layer %q", l.Name, l.Parent),
			})
		}
	}
	return errs
}
