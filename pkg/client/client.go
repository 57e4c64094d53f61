package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/matst80/slask-dashboard/pkg/types"
	"golang.org/x/oauth2"
)

// DataClient talks to the dashboard data service. Every call is a fresh
// request; nothing is cached.
type DataClient struct {
	BaseUrl    string
	SessionId  string
	HttpClient *http.Client
}

func NewDataClient(baseUrl string) *DataClient {
	return &DataClient{
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
		HttpClient: &http.Client{},
	}
}

// NewDataClientWithToken authenticates every request with a static bearer
// token. A zero timeout leaves requests unbounded.
func NewDataClientWithToken(baseUrl, token string, timeout time.Duration) *DataClient {
	c := NewDataClient(baseUrl)
	base := &http.Client{Timeout: timeout}
	if token == "" {
		c.HttpClient = base
		return c
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	c.HttpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
	c.HttpClient.Timeout = timeout
	return c
}

func (c *DataClient) url(path, query string) string {
	if query == "" {
		return c.BaseUrl + path
	}
	return c.BaseUrl + path + "?" + query
}

func (c *DataClient) do(ctx context.Context, method, path, query string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, query), reader)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())
	if c.SessionId != "" {
		req.Header.Set("X-Session-Id", c.SessionId)
	}
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &TransportError{Endpoint: path, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// fetch reads the whole response body. Callers record the request metrics
// once the body is decoded.
func (c *DataClient) fetch(ctx context.Context, method, path, query string, body any) ([]byte, error) {
	resp, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: path, Err: err}
	}
	return data, nil
}

func getJSON[T any](ctx context.Context, c *DataClient, path, query string) (_ *T, err error) {
	defer observeFetch(path, time.Now(), &err)
	data, err := c.fetch(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	var out T
	if err := sonic.Unmarshal(data, &out); err != nil {
		parseFailures.WithLabelValues(path).Inc()
		return nil, &ParseError{Endpoint: path, Err: err}
	}
	return &out, nil
}

func (c *DataClient) Options(ctx context.Context) (*Options, error) {
	return getJSON[Options](ctx, c, OptionsPath, "")
}

func (c *DataClient) KPI(ctx context.Context, query string) (*KPI, error) {
	return getJSON[KPI](ctx, c, KPIPath, query)
}

func (c *DataClient) TopGames(ctx context.Context, query string) (*Ranking, error) {
	return getJSON[Ranking](ctx, c, TopGamesPath, query)
}

func (c *DataClient) PublisherSales(ctx context.Context, query string) (*Ranking, error) {
	return getJSON[Ranking](ctx, c, PublisherSalesPath, query)
}

func (c *DataClient) YearlySales(ctx context.Context, query string) (*Trend, error) {
	return getJSON[Trend](ctx, c, YearlySalesPath, query)
}

func (c *DataClient) raw(ctx context.Context, path, query string) (_ RawSeries, err error) {
	defer observeFetch(path, time.Now(), &err)
	data, err := c.fetch(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if !sonic.Valid(data) {
		parseFailures.WithLabelValues(path).Inc()
		return nil, &ParseError{Endpoint: path, Err: errors.New("invalid json")}
	}
	return data, nil
}

func (c *DataClient) RegionSales(ctx context.Context, query string) (RawSeries, error) {
	return c.raw(ctx, RegionSalesPath, query)
}

func (c *DataClient) GenreSales(ctx context.Context, query string) (RawSeries, error) {
	return c.raw(ctx, GenreSalesPath, query)
}

// NLFilter asks the interpretation endpoint to turn free text into a filter spec.
func (c *DataClient) NLFilter(ctx context.Context, text string) (_ *types.NLResponse, err error) {
	defer observeFetch(NLFilterPath, time.Now(), &err)
	data, err := c.fetch(ctx, http.MethodPost, NLFilterPath, "", types.NLRequest{Query: text})
	if err != nil {
		return nil, err
	}
	var out types.NLResponse
	if err := sonic.Unmarshal(data, &out); err != nil {
		parseFailures.WithLabelValues(NLFilterPath).Inc()
		return nil, &ParseError{Endpoint: NLFilterPath, Err: err}
	}
	return &out, nil
}

// ReportCsv posts the export filters and streams the CSV body into w.
func (c *DataClient) ReportCsv(ctx context.Context, filters types.ReportFilters, w io.Writer) (n int64, err error) {
	defer observeFetch(ReportCsvPath, time.Now(), &err)
	resp, err := c.do(ctx, http.MethodPost, ReportCsvPath, "", types.ReportRequest{Filters: filters})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	n, err = io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Endpoint: ReportCsvPath, Err: err}
	}
	return n, nil
}
