package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/matst80/slask-dashboard/pkg/options"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/matst80/slask-dashboard/pkg/view"
)

// Terminal prints KPI figures and control changes as plain text lines.
type Terminal struct {
	mu sync.Mutex
	w  io.Writer
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.w, format, args...)
}

func (t *Terminal) ShowKPI(kpi client.KPI) {
	t.printf("Total sales: %s  Total games: %d\n", formatNumber(kpi.TotalSales), kpi.TotalGames)
}

func (t *Terminal) ControlsChanged(facet types.Facet, controls []options.Control) {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		mark := " "
		if c.Checked {
			mark = "x"
		}
		parts = append(parts, fmt.Sprintf("[%s] %s", mark, c.Value))
	}
	t.printf("%s: %s\n", facet, strings.Join(parts, " "))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TextSurface writes a chart as a labelled table to the terminal.
type TextSurface struct {
	Name     string
	terminal *Terminal
}

func (t *Terminal) Surface(name string) *TextSurface {
	return &TextSurface{Name: name, terminal: t}
}

func (s *TextSurface) NewChart(spec view.ChartSpec) (view.Chart, error) {
	c := &textChart{surface: s}
	return c, c.Update(spec)
}

func (s *TextSurface) ShowChart() {}

func (s *TextSurface) ShowNoData() {
	s.terminal.printf("%s: No data\n", s.Name)
}

type textChart struct {
	surface *TextSurface
}

func (c *textChart) Update(spec view.ChartSpec) error {
	var sb strings.Builder
	title := spec.Title
	if title == "" {
		title = string(spec.Kind)
	}
	fmt.Fprintf(&sb, "%s (%s)\n", c.surface.Name, title)
	for _, ds := range spec.Datasets {
		if len(spec.Datasets) > 1 || ds.Label != "" {
			fmt.Fprintf(&sb, "  %s\n", ds.Label)
		}
		for i, v := range ds.Data {
			fmt.Fprintf(&sb, "    %-24s %s\n", labelAt(spec.Labels, i), formatNumber(v))
		}
	}
	c.surface.terminal.printf("%s", sb.String())
	return nil
}

func (c *textChart) Destroy() error {
	return nil
}
