package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/matst80/slask-dashboard/pkg/dashboard"
	"github.com/matst80/slask-dashboard/pkg/render"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case client.OptionsPath:
			io.WriteString(w, `{"years":[2006],"genres":["Action"],"platforms":["Wii"],"publishers":["Nintendo"],"regions":["NA","EU"]}`)
		case client.KPIPath:
			io.WriteString(w, `{"total_sales":0,"total_games":0}`)
		case client.TopGamesPath, client.PublisherSalesPath:
			io.WriteString(w, `{"labels":[],"values":[]}`)
		case client.YearlySalesPath:
			io.WriteString(w, `{"labels":[],"datasets":[]}`)
		case client.RegionSalesPath, client.GenreSalesPath:
			io.WriteString(w, `{}`)
		case client.NLFilterPath:
			io.WriteString(w, `{"filters":{"region":["EU"]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestRepl(t *testing.T) (*Repl, *dashboard.Dashboard, *bytes.Buffer) {
	srv := fakeService(t)
	var out bytes.Buffer
	term := render.NewTerminal(&out)
	cfg := &config{Text: true}
	d := dashboard.New(client.NewDataClient(srv.URL), surfaces(cfg, term), term, dashboard.WithOutputDir(t.TempDir()))
	d.Start(context.Background())
	return NewRepl(d, &out), d, &out
}

func TestRepl_Commands(t *testing.T) {
	r, d, out := newTestRepl(t)
	ctx := context.Background()

	require.NoError(t, r.Execute(ctx, "toggle region NA"))
	require.NoError(t, r.Execute(ctx, "toggle genre Action"))
	out.Reset()
	require.NoError(t, r.Execute(ctx, "query"))
	assert.Equal(t, "genre=Action&region=NA\n", out.String())

	require.NoError(t, r.Execute(ctx, "nl games in europe"))
	assert.Equal(t, []string{"EU"}, d.State.Values(types.FacetRegion))
	assert.Empty(t, d.State.Values(types.FacetGenre))

	require.NoError(t, r.Execute(ctx, "name  super mario "))
	name, ok := d.State.Name()
	assert.True(t, ok)
	assert.Equal(t, "super mario", name)

	require.NoError(t, r.Execute(ctx, "reset"))
	assert.True(t, d.State.IsEmpty())

	out.Reset()
	require.NoError(t, r.Execute(ctx, "options region"))
	assert.Equal(t, "region: [ ] NA [ ] EU\n", out.String())
}

func TestRepl_Errors(t *testing.T) {
	r, _, _ := newTestRepl(t)
	ctx := context.Background()
	assert.ErrorIs(t, r.Execute(ctx, "toggle colour red"), types.ErrUnknownFacet)
	assert.Error(t, r.Execute(ctx, "toggle year"))
	assert.Error(t, r.Execute(ctx, "frobnicate"))
	assert.ErrorIs(t, r.Execute(ctx, "quit"), errQuit)
	assert.NoError(t, r.Execute(ctx, "   "))
}

func TestRepl_RunStopsOnQuit(t *testing.T) {
	r, d, _ := newTestRepl(t)
	err := r.Run(context.Background(), strings.NewReader("toggle year 2006\nquit\ntoggle year 2007\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2006"}, d.State.Values(types.FacetYear))
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("DATA_URL", "http://data:5000")
	t.Setenv("DATA_TIMEOUT", "3")
	t.Setenv("OUTPUT_DIR", "/tmp/out")
	cfg, err := loadConfig(flag.NewFlagSet("test", flag.ContinueOnError), []string{"-out", "charts", "-text"})
	require.NoError(t, err)
	assert.Equal(t, "http://data:5000", cfg.DataUrl)
	assert.Equal(t, "charts", cfg.OutputDir)
	assert.Equal(t, float64(3), cfg.DataTimeout.Seconds())
	assert.True(t, cfg.Text)
}
