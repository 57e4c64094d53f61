package view

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/matst80/slask-dashboard/pkg/client"
)

type Outcome int

const (
	OutcomeRendered Outcome = iota
	OutcomeNoData
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRendered:
		return "rendered"
	case OutcomeNoData:
		return "no_data"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	}
	return "unknown"
}

// Adapter runs one visualization's fetch and render cycle.
type Adapter interface {
	Name() string
	Refresh(ctx context.Context, query string) (Outcome, error)
}

// DataSource is the part of the data service the views read from.
type DataSource interface {
	KPI(ctx context.Context, query string) (*client.KPI, error)
	TopGames(ctx context.Context, query string) (*client.Ranking, error)
	RegionSales(ctx context.Context, query string) (client.RawSeries, error)
	YearlySales(ctx context.Context, query string) (*client.Trend, error)
	GenreSales(ctx context.Context, query string) (client.RawSeries, error)
	PublisherSales(ctx context.Context, query string) (*client.Ranking, error)
}

type config struct {
	guarded bool
}

type Option func(*config)

// WithGenerationGuard drops a response when a newer request for the same
// view was issued after it. Without it the last response to arrive wins.
func WithGenerationGuard() Option {
	return func(c *config) {
		c.guarded = true
	}
}

func newConfig(opts []Option) config {
	c := config{}
	for _, o := range opts {
		o(&c)
	}
	return c
}

// generationGuard tags every fetch with an increasing generation so a
// response can tell whether a newer request has been issued since.
type generationGuard struct {
	issued atomic.Uint64
}

func (g *generationGuard) issue() uint64 {
	return g.issued.Add(1)
}

func (g *generationGuard) superseded(gen uint64) bool {
	return g.issued.Load() > gen
}

// cycle is the shared fetch, normalize, apply loop of every adapter.
type cycle[T any] struct {
	config
	name  string
	guard generationGuard
	// apply serializes the staleness check with the render it guards.
	apply sync.Mutex
	fetch func(ctx context.Context, query string) (T, error)
	show  func(payload T) (Outcome, error)
}

func (c *cycle[T]) Name() string {
	return c.name
}

func (c *cycle[T]) Refresh(ctx context.Context, query string) (Outcome, error) {
	gen := c.guard.issue()
	payload, err := c.fetch(ctx, query)

	c.apply.Lock()
	defer c.apply.Unlock()
	if c.guarded && c.guard.superseded(gen) {
		log.Printf("%s: dropping response for generation %d", c.name, gen)
		return OutcomeStale, nil
	}
	if err != nil {
		log.Printf("%s: refresh failed, keeping last render: %v", c.name, err)
		return OutcomeFailed, err
	}
	outcome, err := c.show(payload)
	if err != nil {
		log.Printf("%s: render failed: %v", c.name, err)
	}
	return outcome, err
}
