package main

import (
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/matst80/slask-dashboard/pkg/common"
	"github.com/matst80/slask-dashboard/pkg/dashboard"
	"github.com/matst80/slask-dashboard/pkg/options"
	"github.com/matst80/slask-dashboard/pkg/query"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type viewState struct {
	Name   string `json:"name"`
	Live   bool   `json:"live"`
	NoData bool   `json:"no_data"`
}

type stateResponse struct {
	SessionId string                       `json:"session_id"`
	Revision  uint64                       `json:"revision"`
	Query     string                       `json:"query"`
	Filters   types.FilterSpec             `json:"filters"`
	Controls  map[string][]options.Control `json:"controls"`
	Views     []viewState                  `json:"views"`
}

func debugRouter(d *dashboard.Dashboard, profiling bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/state", common.JsonHandler(func(r *http.Request) (any, error) {
		controls := make(map[string][]options.Control, len(types.AllFacets))
		for _, f := range types.AllFacets {
			controls[string(f)] = d.Registry.Controls(f)
		}
		views := make([]viewState, 0, len(d.Charts()))
		for _, c := range d.Charts() {
			views = append(views, viewState{
				Name:   c.Name(),
				Live:   c.Handle.Live(),
				NoData: c.Handle.ShowingNoData(),
			})
		}
		return stateResponse{
			SessionId: d.SessionId,
			Revision:  d.State.Revision(),
			Query:     query.Encode(d.State),
			Filters:   d.State.Snapshot(),
			Controls:  controls,
			Views:     views,
		}, nil
	}))

	if profiling {
		r.HandleFunc("/debug/pprof/", pprof.Index)
		r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		r.HandleFunc("/debug/pprof/profile", pprof.Profile)
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		r.HandleFunc("/debug/pprof/trace", pprof.Trace)
		r.Handle("/debug/pprof/{name}", http.HandlerFunc(pprof.Index))
	}
	return r
}
