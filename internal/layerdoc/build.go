package layerdoc

import (
	"fmt"

	"github.com/roach88/strata/internal/props"
)

// Build constructs the document's delegation chains. Returns the built
// stores keyed by layer name; iterate Document.Layers for declaration
// order.
//
// Phases: create every store, apply properties and tombstones, wire
// parents, freeze. Freezing last means a frozen layer can still be named
// as a parent and still receive its own parent edge.
func (d *Document) Build() (map[string]*props.Store, error) {
	if errs := d.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	stores := make(map[string]*props.Store, len(d.Layers))
	for _, l := range d.Layers {
		s := props.New(props.WithLabel(l.Name))
		for k, v := range l.Properties {
			if err := s.Set(k, v); err != nil {
				return nil, fmt.Errorf("layer %q: setting %q: %w", l.Name, k, err)
			}
		}
		for _, name := range l.Deleted {
			if err := s.Delete(name); err != nil {
				return nil, fmt.Errorf("layer %q: deleting %q: %w", l.Name, name, err)
			}
		}
		stores[l.Name] = s
	}

	for _, l := range d.Layers {
		if l.Parent == "" {
			continue
		}
		if err := stores[l.Name].SetParent(stores[l.Parent]); err != nil {
			if props.IsCyclicDelegationError(err) {
				return nil, &DocError{
					Code:    CodeCycle,
					Message: fmt.Sprintf("layer %q delegating to %q closes a loop", l.Name, l.Parent),
					Err:     err,
				}
			}
			return nil, fmt.Errorf("layer %q: wiring parent %q: %w", l.Name, l.Parent, err)
		}
	}

	for _, l := range d.Layers {
		if l.Frozen {
			stores[l.Name].Freeze()
		}
	}
	return stores, nil
}
