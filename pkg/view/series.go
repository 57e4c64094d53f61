package view

import (
	"errors"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/tidwall/gjson"
)

var ErrUnsupportedShape = errors.New("unsupported series shape")

// Series is the internal {labels, values} record every single-series view
// renders from.
type Series struct {
	Labels []string
	Values []float64
}

func (s Series) Len() int {
	return min(len(s.Labels), len(s.Values))
}

// Empty reports whether there is nothing worth drawing: no points, or only zeros.
func (s Series) Empty() bool {
	return s.Len() == 0 || allZero(s.Values[:s.Len()])
}

func (s Series) trimmed() Series {
	n := s.Len()
	return Series{Labels: s.Labels[:n], Values: s.Values[:n]}
}

// TrendSeries is the multi-dataset record used by the yearly trend.
type TrendSeries struct {
	Labels   []string
	Datasets []client.Dataset
}

func (t TrendSeries) Empty() bool {
	if len(t.Labels) == 0 || len(t.Datasets) == 0 {
		return true
	}
	for _, ds := range t.Datasets {
		if !allZero(ds.Data) {
			return false
		}
	}
	return true
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

// NormalizeSeries turns either a {labels, values} object or a bare mapping of
// label to number into a Series. Mapping keys keep their document order.
func NormalizeSeries(raw []byte) (Series, error) {
	if !gjson.ValidBytes(raw) {
		return Series{}, ErrUnsupportedShape
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Series{}, ErrUnsupportedShape
	}
	s := Series{Labels: []string{}, Values: []float64{}}
	labels, values := root.Get("labels"), root.Get("values")
	if labels.IsArray() && values.IsArray() {
		labels.ForEach(func(_, v gjson.Result) bool {
			s.Labels = append(s.Labels, v.String())
			return true
		})
		values.ForEach(func(_, v gjson.Result) bool {
			s.Values = append(s.Values, v.Float())
			return true
		})
		return s.trimmed(), nil
	}
	root.ForEach(func(k, v gjson.Result) bool {
		switch v.Type {
		case gjson.Number, gjson.Null:
			s.Labels = append(s.Labels, k.String())
			s.Values = append(s.Values, v.Float())
		}
		return true
	})
	return s, nil
}

func SeriesFromRanking(r *client.Ranking) Series {
	if r == nil {
		return Series{}
	}
	return Series{Labels: r.Labels, Values: r.Values}.trimmed()
}

func TrendFromResponse(t *client.Trend) TrendSeries {
	if t == nil {
		return TrendSeries{}
	}
	return TrendSeries{Labels: t.Labels, Datasets: t.Datasets}
}
