package view

import (
	"context"

	"github.com/matst80/slask-dashboard/pkg/client"
)

const publisherLabel = "Global Sales (Million)"

// ChartAdapter is an adapter that owns one chart surface.
type ChartAdapter struct {
	Adapter
	Handle *RendererHandle
}

func chartAdapter[T any](name string, surface Surface, fetch func(context.Context, string) (T, error), build func(T) (ChartSpec, bool, error), opts []Option) *ChartAdapter {
	handle := NewRendererHandle(surface)
	return &ChartAdapter{
		Handle: handle,
		Adapter: &cycle[T]{
			config: newConfig(opts),
			name:   name,
			fetch:  fetch,
			show: func(payload T) (Outcome, error) {
				spec, ok, err := build(payload)
				if err != nil {
					return OutcomeFailed, err
				}
				if !ok {
					handle.NoData()
					return OutcomeNoData, nil
				}
				if err := handle.Render(spec); err != nil {
					return OutcomeFailed, err
				}
				return OutcomeRendered, nil
			},
		},
	}
}

// NewRankingAdapter shows the top games bar chart.
func NewRankingAdapter(src DataSource, surface Surface, opts ...Option) *ChartAdapter {
	return chartAdapter("ranking", surface, src.TopGames, buildRanking, opts)
}

func buildRanking(r *client.Ranking) (ChartSpec, bool, error) {
	s := SeriesFromRanking(r)
	if s.Empty() {
		return ChartSpec{}, false, nil
	}
	return ChartSpec{
		Kind:   KindBar,
		Title:  r.Metric,
		Labels: s.Labels,
		Datasets: []DatasetSpec{{
			Label:  r.Metric,
			Data:   s.Values,
			Colors: []Color{ColorFor(r.Metric)},
		}},
		LegendInteractive: false,
	}, true, nil
}

// NewRegionAdapter shows the sales share per region as a pie.
func NewRegionAdapter(src DataSource, surface Surface, opts ...Option) *ChartAdapter {
	return chartAdapter("region", surface, src.RegionSales, buildRegion, opts)
}

func buildRegion(raw client.RawSeries) (ChartSpec, bool, error) {
	s, err := NormalizeSeries(raw)
	if err != nil {
		return ChartSpec{}, false, err
	}
	if s.Empty() {
		return ChartSpec{}, false, nil
	}
	return ChartSpec{
		Kind:   KindPie,
		Title:  "Sales by region",
		Labels: s.Labels,
		Datasets: []DatasetSpec{{
			Data:   s.Values,
			Colors: colorsFor(s.Labels),
		}},
	}, true, nil
}

// NewTrendAdapter shows yearly sales with one line per region.
func NewTrendAdapter(src DataSource, surface Surface, opts ...Option) *ChartAdapter {
	return chartAdapter("yearly", surface, src.YearlySales, buildTrend, opts)
}

func buildTrend(t *client.Trend) (ChartSpec, bool, error) {
	ts := TrendFromResponse(t)
	if ts.Empty() {
		return ChartSpec{}, false, nil
	}
	datasets := make([]DatasetSpec, 0, len(ts.Datasets))
	for _, ds := range ts.Datasets {
		datasets = append(datasets, DatasetSpec{
			Label:  ds.Label,
			Data:   ds.Data,
			Colors: []Color{ColorFor(ds.Label)},
		})
	}
	return ChartSpec{
		Kind:              KindLine,
		Title:             "Yearly sales",
		Labels:            ts.Labels,
		Datasets:          datasets,
		LegendInteractive: true,
	}, true, nil
}

// NewGenreAdapter shows the sales share per genre as a doughnut.
func NewGenreAdapter(src DataSource, surface Surface, opts ...Option) *ChartAdapter {
	return chartAdapter("genre", surface, src.GenreSales, buildGenre, opts)
}

func buildGenre(raw client.RawSeries) (ChartSpec, bool, error) {
	s, err := NormalizeSeries(raw)
	if err != nil {
		return ChartSpec{}, false, err
	}
	if s.Empty() {
		return ChartSpec{}, false, nil
	}
	colors := make([]Color, s.Len())
	for i := range colors {
		colors[i] = PaletteColor(i)
	}
	return ChartSpec{
		Kind:   KindDoughnut,
		Title:  "Sales by genre",
		Labels: s.Labels,
		Datasets: []DatasetSpec{{
			Data:   s.Values,
			Colors: colors,
		}},
		LegendInteractive: true,
	}, true, nil
}

// NewPublisherAdapter shows the top publishers as horizontal bars.
func NewPublisherAdapter(src DataSource, surface Surface, opts ...Option) *ChartAdapter {
	return chartAdapter("publisher", surface, src.PublisherSales, buildPublisher, opts)
}

func buildPublisher(r *client.Ranking) (ChartSpec, bool, error) {
	s := SeriesFromRanking(r)
	if s.Empty() {
		return ChartSpec{}, false, nil
	}
	return ChartSpec{
		Kind:   KindBar,
		Title:  "Top publishers",
		Labels: s.Labels,
		Datasets: []DatasetSpec{{
			Label:  publisherLabel,
			Data:   s.Values,
			Colors: []Color{ColorPublisher},
		}},
		Horizontal:        true,
		LegendHidden:      true,
		LegendInteractive: false,
	}, true, nil
}
