package client

import (
	"encoding/json"

	"github.com/matst80/slask-dashboard/pkg/types"
)

const (
	OptionsPath        = "/api/options"
	KPIPath            = "/api/kpi"
	TopGamesPath       = "/api/top-games"
	RegionSalesPath    = "/api/region-sales"
	YearlySalesPath    = "/api/yearly-sales"
	GenreSalesPath     = "/api/genre-sales"
	PublisherSalesPath = "/api/publisher-sales"
	ReportCsvPath      = "/api/report_csv"
	NLFilterPath       = "/api/nl-filter"
)

// Options is the universe of selectable values per facet.
type Options struct {
	Years      types.StringList `json:"years"`
	Genres     types.StringList `json:"genres"`
	Platforms  types.StringList `json:"platforms"`
	Publishers types.StringList `json:"publishers"`
	Regions    types.StringList `json:"regions"`
}

func (o *Options) Values(f types.Facet) []string {
	switch f {
	case types.FacetYear:
		return o.Years
	case types.FacetGenre:
		return o.Genres
	case types.FacetPlatform:
		return o.Platforms
	case types.FacetPublisher:
		return o.Publishers
	case types.FacetRegion:
		return o.Regions
	}
	return nil
}

type KPI struct {
	TotalSales float64 `json:"total_sales"`
	TotalGames int     `json:"total_games"`
}

// Ranking is the {labels, values} shape used by top-games and publisher-sales.
type Ranking struct {
	Labels types.StringList `json:"labels"`
	Values []float64        `json:"values"`
	Metric string           `json:"metric,omitempty"`
}

type Dataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

// Trend is the yearly-sales shape. Labels are years and may arrive as numbers.
type Trend struct {
	Labels   types.StringList `json:"labels"`
	Datasets []Dataset        `json:"datasets"`
}

// RawSeries holds a response whose shape is either {labels, values} or a bare
// label to number mapping. It is normalized by the view that consumes it.
type RawSeries = json.RawMessage
