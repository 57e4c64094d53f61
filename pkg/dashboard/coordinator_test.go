package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/matst80/slask-dashboard/pkg/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAdapter struct {
	name    string
	seen    []string
	refresh func(q string) (view.Outcome, error)
}

func (s *stubAdapter) Name() string { return s.name }

func (s *stubAdapter) Refresh(_ context.Context, q string) (view.Outcome, error) {
	s.seen = append(s.seen, q)
	return s.refresh(q)
}

func rendered(string) (view.Outcome, error) { return view.OutcomeRendered, nil }

func TestCoordinator_IsolatesFailuresAndPanics(t *testing.T) {
	state := types.NewFilterState()
	require.NoError(t, state.Toggle(types.FacetYear, "2006"))

	a := &stubAdapter{name: "a", refresh: rendered}
	b := &stubAdapter{name: "b", refresh: func(string) (view.Outcome, error) {
		return view.OutcomeFailed, errors.New("boom")
	}}
	c := &stubAdapter{name: "c", refresh: func(string) (view.Outcome, error) { panic("bad data") }}
	d := &stubAdapter{name: "d", refresh: rendered}

	report := NewCoordinator(state, a, b, c, d).Refresh(context.Background())

	assert.Equal(t, []string{"a", "b", "c", "d"}, names(report))
	assert.Len(t, report.Failed(), 2)
	assert.ErrorContains(t, report.Results[2].Err, "bad data")
	assert.Equal(t, []string{"year=2006"}, d.seen)
}

func TestCoordinator_EncodesPerView(t *testing.T) {
	state := types.NewFilterState()
	a := &stubAdapter{name: "a"}
	a.refresh = func(string) (view.Outcome, error) {
		_ = state.Toggle(types.FacetRegion, "JP")
		return view.OutcomeRendered, nil
	}
	b := &stubAdapter{name: "b", refresh: rendered}

	NewCoordinator(state, a, b).Refresh(context.Background())
	assert.Equal(t, []string{""}, a.seen)
	assert.Equal(t, []string{"region=JP"}, b.seen)
}

func TestReport_Outcome(t *testing.T) {
	r := Report{Results: []AdapterResult{{Name: "kpi", Outcome: view.OutcomeNoData}}}
	o, ok := r.Outcome("kpi")
	assert.True(t, ok)
	assert.Equal(t, view.OutcomeNoData, o)
	_, ok = r.Outcome("missing")
	assert.False(t, ok)
}
