package view

import "sync"

type ChartKind string

const (
	KindBar      ChartKind = "bar"
	KindPie      ChartKind = "pie"
	KindDoughnut ChartKind = "doughnut"
	KindLine     ChartKind = "line"
)

type DatasetSpec struct {
	Label string
	Data  []float64
	// Colors holds either one color for the whole dataset or one per point.
	Colors []Color
}

// ChartSpec is the render instruction handed to a chart surface.
type ChartSpec struct {
	Kind              ChartKind
	Title             string
	Labels            []string
	Datasets          []DatasetSpec
	Horizontal        bool
	LegendHidden      bool
	LegendInteractive bool
}

// Surface is one place on screen that can show a chart or a no-data
// placeholder.
type Surface interface {
	NewChart(spec ChartSpec) (Chart, error)
	ShowChart()
	ShowNoData()
}

// Chart is a live renderer instance created by a Surface.
type Chart interface {
	Update(spec ChartSpec) error
	Destroy() error
}

// RendererHandle owns the single chart instance of a surface. The chart is
// created on the first Render and mutated in place afterwards.
type RendererHandle struct {
	mu      sync.Mutex
	surface Surface
	chart   Chart
	noData  bool
}

func NewRendererHandle(surface Surface) *RendererHandle {
	return &RendererHandle{surface: surface}
}

// Render ensures the chart exists, otherwise updates it, and shows it.
func (h *RendererHandle) Render(spec ChartSpec) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.chart == nil {
		c, err := h.surface.NewChart(spec)
		if err != nil {
			return err
		}
		h.chart = c
	} else if err := h.chart.Update(spec); err != nil {
		return err
	}
	h.noData = false
	h.surface.ShowChart()
	return nil
}

// NoData hides the chart behind the placeholder. The chart instance is kept
// and reused by the next Render.
func (h *RendererHandle) NoData() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.noData = true
	h.surface.ShowNoData()
}

func (h *RendererHandle) Live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chart != nil
}

func (h *RendererHandle) ShowingNoData() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.noData
}

func (h *RendererHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.chart == nil {
		return nil
	}
	err := h.chart.Destroy()
	h.chart = nil
	return err
}
