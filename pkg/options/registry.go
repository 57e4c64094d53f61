package options

import (
	"context"
	"log"
	"slices"
	"sync"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/matst80/slask-dashboard/pkg/types"
)

// Control is one selectable facet value, the checkbox of the dashboard.
type Control struct {
	Facet   types.Facet `json:"facet"`
	Value   string      `json:"value"`
	Checked bool        `json:"checked"`
}

type OptionsSource interface {
	Options(ctx context.Context) (*client.Options, error)
}

// ControlView is told when the controls of a facet change.
type ControlView interface {
	ControlsChanged(facet types.Facet, controls []Control)
}

// Registry holds the selectable universe per facet and keeps its controls
// bound to the filter state.
type Registry struct {
	mu       sync.RWMutex
	state    *types.FilterState
	controls map[types.Facet][]*Control
	view     ControlView
}

func NewRegistry(state *types.FilterState, view ControlView) *Registry {
	return &Registry{
		state:    state,
		controls: make(map[types.Facet][]*Control),
		view:     view,
	}
}

// Load fetches the option universe and rebuilds every control. Controls for
// values already selected in the state start checked. A failed load is
// logged and leaves the previous controls in place.
func (r *Registry) Load(ctx context.Context, src OptionsSource) error {
	opts, err := src.Options(ctx)
	if err != nil {
		log.Printf("options: load failed: %v", err)
		return err
	}
	r.mu.Lock()
	for _, f := range types.AllFacets {
		values := opts.Values(f)
		controls := make([]*Control, 0, len(values))
		for _, v := range values {
			controls = append(controls, &Control{Facet: f, Value: v, Checked: r.state.Has(f, v)})
		}
		r.controls[f] = controls
	}
	r.mu.Unlock()
	r.notifyAll()
	return nil
}

// Toggle flips a value in the state and mirrors it on the matching control.
// Values without a control are still recorded in the state.
func (r *Registry) Toggle(facet types.Facet, value string) error {
	if err := r.state.Toggle(facet, value); err != nil {
		return err
	}
	checked := r.state.Has(facet, value)
	r.mu.Lock()
	if c := r.find(facet, value); c != nil {
		c.Checked = checked
	}
	r.mu.Unlock()
	r.notify(facet)
	return nil
}

// ClearAll unchecks every control without touching the state.
func (r *Registry) ClearAll() {
	r.mu.Lock()
	for _, controls := range r.controls {
		for _, c := range controls {
			c.Checked = false
		}
	}
	r.mu.Unlock()
}

// Sync clears every control and checks exactly those present in the state.
func (r *Registry) Sync() {
	r.ClearAll()
	r.mu.Lock()
	for _, f := range types.AllFacets {
		for _, v := range r.state.Values(f) {
			if c := r.find(f, v); c != nil {
				c.Checked = true
			}
		}
	}
	r.mu.Unlock()
	r.notifyAll()
}

func (r *Registry) find(facet types.Facet, value string) *Control {
	idx := slices.IndexFunc(r.controls[facet], func(c *Control) bool {
		return c.Value == value
	})
	if idx < 0 {
		return nil
	}
	return r.controls[facet][idx]
}

// Controls returns a copy of the controls of a facet in server order.
func (r *Registry) Controls(facet types.Facet) []Control {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Control, 0, len(r.controls[facet]))
	for _, c := range r.controls[facet] {
		result = append(result, *c)
	}
	return result
}

// Checked lists the checked values of a facet in server order.
func (r *Registry) Checked(facet types.Facet) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]string, 0)
	for _, c := range r.controls[facet] {
		if c.Checked {
			result = append(result, c.Value)
		}
	}
	return result
}

// Known reports whether value is part of the loaded universe of facet.
func (r *Registry) Known(facet types.Facet, value string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(facet, value) != nil
}

func (r *Registry) notify(facet types.Facet) {
	if r.view == nil {
		return
	}
	r.view.ControlsChanged(facet, r.Controls(facet))
}

func (r *Registry) notifyAll() {
	for _, f := range types.AllFacets {
		r.notify(f)
	}
}
