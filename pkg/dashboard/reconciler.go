package dashboard

import (
	"context"
	"log"
	"strings"

	"github.com/matst80/slask-dashboard/pkg/options"
	"github.com/matst80/slask-dashboard/pkg/types"
)

type Interpreter interface {
	NLFilter(ctx context.Context, text string) (*types.NLResponse, error)
}

// Reconciler applies filter specs that originate outside the controls. The
// incoming spec replaces the whole filter state.
type Reconciler struct {
	interpreter Interpreter
	state       *types.FilterState
	registry    *options.Registry
	coordinator *Coordinator
}

func NewReconciler(interpreter Interpreter, state *types.FilterState, registry *options.Registry, coordinator *Coordinator) *Reconciler {
	return &Reconciler{
		interpreter: interpreter,
		state:       state,
		registry:    registry,
		coordinator: coordinator,
	}
}

type Applied struct {
	Spec   types.FilterSpec
	Report Report
}

// Apply interprets free text and applies the result. Blank text is ignored
// and yields nil. When interpretation fails the state is left untouched.
func (r *Reconciler) Apply(ctx context.Context, text string) (*Applied, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	resp, err := r.interpreter.NLFilter(ctx, text)
	if err != nil {
		log.Printf("nl-filter: %q failed: %v", text, err)
		return nil, err
	}
	return &Applied{Spec: resp.Filters, Report: r.ApplySpec(ctx, resp.Filters)}, nil
}

// ApplySpec replaces the state, re-checks exactly the matching controls and
// refreshes every view.
func (r *Reconciler) ApplySpec(ctx context.Context, spec types.FilterSpec) Report {
	r.state.ReplaceFrom(spec)
	r.registry.Sync()
	return r.coordinator.Refresh(ctx)
}
