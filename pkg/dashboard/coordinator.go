package dashboard

import (
	"context"
	"fmt"
	"log"

	"github.com/matst80/slask-dashboard/pkg/query"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/matst80/slask-dashboard/pkg/view"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskdash_refresh_total",
		Help: "The total number of coordinated refreshes",
	})
	adapterOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskdash_view_outcome_total",
		Help: "View refresh outcomes by view",
	}, []string{"view", "outcome"})
)

type AdapterResult struct {
	Name    string
	Query   string
	Outcome view.Outcome
	Err     error
}

type Report struct {
	Results []AdapterResult
	// OptionsErr is set when Start could not load the selectable values.
	OptionsErr error
}

func (r Report) Failed() []AdapterResult {
	failed := make([]AdapterResult, 0)
	for _, res := range r.Results {
		if res.Outcome == view.OutcomeFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

func (r Report) Outcome(name string) (view.Outcome, bool) {
	for _, res := range r.Results {
		if res.Name == name {
			return res.Outcome, true
		}
	}
	return 0, false
}

// Coordinator refreshes every view from the current filter state. Views run
// in declaration order, one at a time; a failing view never stops the rest.
type Coordinator struct {
	state    *types.FilterState
	adapters []view.Adapter
}

func NewCoordinator(state *types.FilterState, adapters ...view.Adapter) *Coordinator {
	return &Coordinator{state: state, adapters: adapters}
}

func (c *Coordinator) Refresh(ctx context.Context) Report {
	refreshes.Inc()
	report := Report{Results: make([]AdapterResult, 0, len(c.adapters))}
	for _, a := range c.adapters {
		// encode per view, the state may change while earlier views fetch
		q := query.Encode(c.state)
		res := refreshOne(ctx, a, q)
		adapterOutcomes.WithLabelValues(res.Name, res.Outcome.String()).Inc()
		report.Results = append(report.Results, res)
	}
	return report
}

func refreshOne(ctx context.Context, a view.Adapter, q string) (res AdapterResult) {
	res = AdapterResult{Name: a.Name(), Query: q}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("%s: refresh panicked: %v", res.Name, r)
			res.Outcome = view.OutcomeFailed
			res.Err = fmt.Errorf("%s panicked: %v", res.Name, r)
		}
	}()
	res.Outcome, res.Err = a.Refresh(ctx, q)
	return res
}
