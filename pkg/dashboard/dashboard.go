package dashboard

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/matst80/slask-dashboard/pkg/export"
	"github.com/matst80/slask-dashboard/pkg/options"
	"github.com/matst80/slask-dashboard/pkg/query"
	"github.com/matst80/slask-dashboard/pkg/storage"
	"github.com/matst80/slask-dashboard/pkg/tracking"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/matst80/slask-dashboard/pkg/view"
)

// Service is everything the dashboard needs from the data service.
type Service interface {
	view.DataSource
	options.OptionsSource
	Interpreter
	export.ReportSource
}

// Surfaces are the chart surfaces of the five chart views.
type Surfaces struct {
	Ranking   view.Surface
	Region    view.Surface
	Yearly    view.Surface
	Genre     view.Surface
	Publisher view.Surface
}

type Dashboard struct {
	SessionId   string
	OutputDir   string
	State       *types.FilterState
	Registry    *options.Registry
	Coordinator *Coordinator
	Reconciler  *Reconciler
	Exporter    *export.Exporter
	Tracking    tracking.Tracking
	Store       storage.FilterStore

	service Service
	charts  []*view.ChartAdapter
}

type settings struct {
	sessionId   string
	outputDir   string
	store       storage.FilterStore
	tracking    tracking.Tracking
	controlView options.ControlView
	viewOptions []view.Option
}

type Option func(*settings)

func WithSessionId(id string) Option {
	return func(s *settings) { s.sessionId = id }
}

func WithOutputDir(dir string) Option {
	return func(s *settings) { s.outputDir = dir }
}

func WithStore(store storage.FilterStore) Option {
	return func(s *settings) { s.store = store }
}

func WithTracking(t tracking.Tracking) Option {
	return func(s *settings) { s.tracking = t }
}

func WithControlView(v options.ControlView) Option {
	return func(s *settings) { s.controlView = v }
}

func WithViewOptions(opts ...view.Option) Option {
	return func(s *settings) { s.viewOptions = append(s.viewOptions, opts...) }
}

// New wires the filter state, controls, views and reconciler. Views refresh in
// the order KPI, ranking, region, yearly trend, genre, publisher.
func New(service Service, surfaces Surfaces, kpi view.KPIDisplay, opts ...Option) *Dashboard {
	cfg := settings{
		outputDir: ".",
		tracking:  tracking.NoopTracking{},
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sessionId == "" {
		cfg.sessionId = uuid.New().String()
	}

	state := types.NewFilterState()
	registry := options.NewRegistry(state, cfg.controlView)
	vo := cfg.viewOptions
	charts := []*view.ChartAdapter{
		view.NewRankingAdapter(service, surfaces.Ranking, vo...),
		view.NewRegionAdapter(service, surfaces.Region, vo...),
		view.NewTrendAdapter(service, surfaces.Yearly, vo...),
		view.NewGenreAdapter(service, surfaces.Genre, vo...),
		view.NewPublisherAdapter(service, surfaces.Publisher, vo...),
	}
	adapters := []view.Adapter{view.NewKPIAdapter(service, kpi, vo...)}
	for _, c := range charts {
		adapters = append(adapters, c)
	}
	coordinator := NewCoordinator(state, adapters...)

	return &Dashboard{
		SessionId:   cfg.sessionId,
		OutputDir:   cfg.outputDir,
		State:       state,
		Registry:    registry,
		Coordinator: coordinator,
		Reconciler:  NewReconciler(service, state, registry, coordinator),
		Exporter:    &export.Exporter{Source: service},
		Tracking:    cfg.tracking,
		Store:       cfg.store,
		service:     service,
		charts:      charts,
	}
}

// Start loads the option universe, restores the saved filters of the session
// and runs the first refresh. An options failure degrades to empty controls
// and is reported in Report.OptionsErr.
func (d *Dashboard) Start(ctx context.Context) Report {
	optionsErr := d.Registry.Load(ctx, d.service)
	if d.Store != nil {
		spec, err := d.Store.Load(ctx, d.SessionId)
		switch {
		case err == nil:
			log.Printf("dashboard: restoring filters for session %s", d.SessionId)
			d.State.ReplaceFrom(spec)
			d.Registry.Sync()
		case !errors.Is(err, storage.ErrNotFound):
			log.Printf("dashboard: could not restore filters: %v", err)
		}
	}
	report := d.Coordinator.Refresh(ctx)
	report.OptionsErr = optionsErr
	return report
}

func (d *Dashboard) Refresh(ctx context.Context) Report {
	return d.Coordinator.Refresh(ctx)
}

func (d *Dashboard) Toggle(ctx context.Context, facet types.Facet, value string) (Report, error) {
	if err := d.Registry.Toggle(facet, value); err != nil {
		return Report{}, err
	}
	report := d.Coordinator.Refresh(ctx)
	d.record(ctx, tracking.FilterEvent{Action: tracking.ActionToggle, Facet: facet, Value: value})
	return report, nil
}

func (d *Dashboard) SetName(ctx context.Context, text string) Report {
	d.State.SetName(text)
	report := d.Coordinator.Refresh(ctx)
	d.record(ctx, tracking.FilterEvent{Action: tracking.ActionName, Text: text})
	return report
}

func (d *Dashboard) Reset(ctx context.Context) Report {
	d.State.Reset()
	d.Registry.Sync()
	report := d.Coordinator.Refresh(ctx)
	d.record(ctx, tracking.FilterEvent{Action: tracking.ActionReset})
	return report
}

// ApplyNaturalLanguage replaces the filters with the interpretation of text.
// A nil result means the text was blank.
func (d *Dashboard) ApplyNaturalLanguage(ctx context.Context, text string) (*Applied, error) {
	applied, err := d.Reconciler.Apply(ctx, text)
	if err != nil || applied == nil {
		return applied, err
	}
	d.record(ctx, tracking.FilterEvent{Action: tracking.ActionNL, Text: text})
	return applied, nil
}

// ApplySpec replaces the filters with a spec from another source, such as a
// shared session or a deep link.
func (d *Dashboard) ApplySpec(ctx context.Context, spec types.FilterSpec, action tracking.Action) Report {
	report := d.Reconciler.ApplySpec(ctx, spec)
	d.record(ctx, tracking.FilterEvent{Action: action})
	return report
}

func (d *Dashboard) Export(ctx context.Context) (string, int64, error) {
	path, n, err := d.Exporter.Export(ctx, d.State, d.OutputDir)
	if err != nil {
		log.Printf("dashboard: export failed: %v", err)
		return "", 0, err
	}
	d.Tracking.TrackFilter(tracking.FilterEvent{Action: tracking.ActionExport, Query: query.Encode(d.State)})
	return path, n, nil
}

// Charts returns the chart views in refresh order.
func (d *Dashboard) Charts() []*view.ChartAdapter {
	return d.charts
}

func (d *Dashboard) Close() error {
	var errs []error
	for _, c := range d.charts {
		errs = append(errs, c.Handle.Close())
	}
	if d.Store != nil {
		errs = append(errs, d.Store.Close())
	}
	return errors.Join(errs...)
}

// record persists the filter set and tracks the interaction. Both are best
// effort.
func (d *Dashboard) record(ctx context.Context, event tracking.FilterEvent) {
	spec := d.State.Snapshot()
	if d.Store != nil {
		if err := d.Store.Save(ctx, d.SessionId, spec); err != nil {
			log.Printf("dashboard: could not save filters: %v", err)
		}
	}
	event.Spec = spec
	event.Query = query.EncodeSpec(&spec)
	d.Tracking.TrackFilter(event)
}
