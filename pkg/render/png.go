package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matst80/slask-dashboard/pkg/view"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 900
	DefaultHeight = 480
	noDataSuffix  = ".nodata"
)

// PNGSurface renders a chart view into <Dir>/<Name>.png. While the view has
// no data the image is replaced by a <Name>.nodata marker.
type PNGSurface struct {
	Dir    string
	Name   string
	Width  int
	Height int
}

func NewPNGSurface(dir, name string) *PNGSurface {
	return &PNGSurface{Dir: dir, Name: name, Width: DefaultWidth, Height: DefaultHeight}
}

func (s *PNGSurface) ImagePath() string {
	return filepath.Join(s.Dir, s.Name+".png")
}

func (s *PNGSurface) markerPath() string {
	return filepath.Join(s.Dir, s.Name+noDataSuffix)
}

func (s *PNGSurface) NewChart(spec view.ChartSpec) (view.Chart, error) {
	c := &pngChart{surface: s}
	if err := c.Update(spec); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PNGSurface) ShowChart() {
	_ = os.Remove(s.markerPath())
}

func (s *PNGSurface) ShowNoData() {
	_ = os.Remove(s.ImagePath())
	_ = os.WriteFile(s.markerPath(), []byte("No data\n"), 0644)
}

type pngChart struct {
	surface *PNGSurface
}

// Update renders into a buffer before the image on disk is replaced.
func (c *pngChart) Update(spec view.ChartSpec) error {
	var buf bytes.Buffer
	if err := renderPNG(spec, c.surface.Width, c.surface.Height, &buf); err != nil {
		return fmt.Errorf("render %s: %w", c.surface.Name, err)
	}
	tmp := c.surface.ImagePath() + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.surface.ImagePath()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (c *pngChart) Destroy() error {
	err := os.Remove(c.surface.ImagePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func renderPNG(spec view.ChartSpec, width, height int, buf *bytes.Buffer) error {
	if len(spec.Datasets) == 0 {
		return fmt.Errorf("no datasets")
	}
	switch spec.Kind {
	case view.KindBar:
		bc := barChart(spec, width, height)
		return bc.Render(chart.PNG, buf)
	case view.KindPie, view.KindDoughnut:
		pc := pieChart(spec, width, height)
		return pc.Render(chart.PNG, buf)
	case view.KindLine:
		lc := lineChart(spec, width, height)
		return lc.Render(chart.PNG, buf)
	}
	return fmt.Errorf("unsupported chart kind %q", spec.Kind)
}

func hexColor(c view.Color) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(string(c), "#"))
}

// colorAt picks the color for point i of a dataset.
func colorAt(ds view.DatasetSpec, i int) drawing.Color {
	switch len(ds.Colors) {
	case 0:
		return hexColor(view.ColorDefault)
	case 1:
		return hexColor(ds.Colors[0])
	}
	return hexColor(ds.Colors[i%len(ds.Colors)])
}

func maxValue(datasets []view.DatasetSpec) float64 {
	m := 0.0
	for _, ds := range datasets {
		for _, v := range ds.Data {
			if v > m {
				m = v
			}
		}
	}
	if m <= 0 {
		return 1
	}
	return m * 1.1
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}

// barChart renders the first dataset. Horizontal specs are drawn with
// vertical bars.
func barChart(spec view.ChartSpec, width, height int) chart.BarChart {
	ds := spec.Datasets[0]
	bars := make([]chart.Value, 0, len(ds.Data))
	for i, v := range ds.Data {
		c := colorAt(ds, i)
		bars = append(bars, chart.Value{
			Label: labelAt(spec.Labels, i),
			Value: v,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}
	title := spec.Title
	if title == "" {
		title = ds.Label
	}
	return chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth(width, len(bars)),
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxValue(spec.Datasets)}},
		Bars:  bars,
	}
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}
	w := width / (n * 2)
	if w > 60 {
		return 60
	}
	if w < 4 {
		return 4
	}
	return w
}

func pieChart(spec view.ChartSpec, width, height int) chart.PieChart {
	ds := spec.Datasets[0]
	values := make([]chart.Value, 0, len(ds.Data))
	for i, v := range ds.Data {
		c := colorAt(ds, i)
		values = append(values, chart.Value{
			Label: labelAt(spec.Labels, i),
			Value: v,
			Style: chart.Style{FillColor: c},
		})
	}
	return chart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
}

func lineChart(spec view.ChartSpec, width, height int) chart.Chart {
	ticks := make([]chart.Tick, 0, len(spec.Labels))
	xs := make([]float64, len(spec.Labels))
	for i, l := range spec.Labels {
		xs[i] = float64(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: l})
	}
	maxX := float64(len(spec.Labels) - 1)
	if maxX < 1 {
		maxX = 1
	}
	series := make([]chart.Series, 0, len(spec.Datasets))
	for _, ds := range spec.Datasets {
		c := colorAt(ds, 0)
		ys := ds.Data
		if len(ys) > len(xs) {
			ys = ys[:len(xs)]
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs[:len(ys)],
			YValues: ys,
			Style:   chart.Style{StrokeColor: c, StrokeWidth: 2},
		})
	}
	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Ticks: ticks, Range: &chart.ContinuousRange{Min: 0, Max: maxX}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: maxValue(spec.Datasets)}},
		Series:     series,
	}
	if !spec.LegendHidden {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}
