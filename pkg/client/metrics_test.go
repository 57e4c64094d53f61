package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetchCount(t *testing.T, endpoint, outcome string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, fetches.WithLabelValues(endpoint, outcome).Write(m))
	return m.GetCounter().GetValue()
}

func TestFetchOutcome(t *testing.T) {
	assert.Equal(t, "ok", fetchOutcome(nil))
	assert.Equal(t, "transport_error", fetchOutcome(&TransportError{Endpoint: KPIPath, StatusCode: 502}))
	assert.Equal(t, "parse_error", fetchOutcome(fmt.Errorf("kpi: %w", &ParseError{Endpoint: KPIPath, Err: errors.New("bad")})))
	assert.Equal(t, "error", fetchOutcome(errors.New("other")))
}

func TestDataClient_ParseFailureCountedAsParseError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"total_sales":"many"`)
	})
	okBefore := fetchCount(t, KPIPath, "ok")
	parseBefore := fetchCount(t, KPIPath, "parse_error")

	_, err := c.KPI(context.Background(), "")
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, okBefore, fetchCount(t, KPIPath, "ok"))
	assert.Equal(t, parseBefore+1, fetchCount(t, KPIPath, "parse_error"))
}
