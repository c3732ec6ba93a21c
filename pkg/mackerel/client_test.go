package mackerel

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/config"
)

const testBase = "https://mackerel.test"

func newTestClient(t *testing.T, timeout time.Duration) (*Client, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	cfg := &config.Config{APIKey: "secret", BaseURL: testBase, Timeout: timeout}

	c, err := NewClient(cfg, zap.NewNop().Sugar(), WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	return c, transport
}

func TestClientDoSendsAuthenticatedRequest(t *testing.T) {
	c, transport := newTestClient(t, time.Second)

	var seen *http.Request
	var body []byte
	transport.RegisterResponder(http.MethodPost, testBase+"/api/v0/hosts/h1/status",
		func(req *http.Request) (*http.Response, error) {
			seen = req
			body, _ = io.ReadAll(req.Body)
			return httpmock.NewStringResponse(http.StatusOK, `{"success":true}`), nil
		})

	raw, err := c.Do(context.Background(), api.Request{
		Method: http.MethodPost,
		Path:   "/hosts/h1/status",
		Body:   map[string]any{"status": "standby"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"success":true}`, string(raw))

	require.NotNil(t, seen)
	assert.Equal(t, "secret", seen.Header.Get("X-Api-Key"))
	assert.Equal(t, "application/json", seen.Header.Get("Content-Type"))
	assert.Contains(t, seen.Header.Get("User-Agent"), "mackerel-mcp-server/")
	assert.JSONEq(t, `{"status":"standby"}`, string(body))
	assert.Equal(t, 1, transport.GetTotalCallCount())
}

func TestClientDoEncodesQuery(t *testing.T) {
	c, transport := newTestClient(t, time.Second)

	var query url.Values
	transport.RegisterResponder(http.MethodGet, testBase+"/api/v0/hosts",
		func(req *http.Request) (*http.Response, error) {
			query = req.URL.Query()
			return httpmock.NewStringResponse(http.StatusOK, `{"hosts":[]}`), nil
		})

	_, err := c.Do(context.Background(), api.Request{
		Method: http.MethodGet,
		Path:   "/hosts",
		Query:  url.Values{"service": {"web"}, "status": {"working", "standby"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "web", query.Get("service"))
	assert.Equal(t, []string{"working", "standby"}, query["status"])
}

func TestClientDoStatusMapping(t *testing.T) {
	subtests := []struct {
		name    string
		status  int
		body    string
		kind    api.ErrorKind
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"Authentication failed."}}`, api.KindAuthentication, "Authentication failed."},
		{"forbidden", http.StatusForbidden, `{"error":"Permission denied"}`, api.KindAuthentication, "Permission denied"},
		{"not-found", http.StatusNotFound, `{"error":{"message":"Host Not Found."}}`, api.KindNotFound, "Host Not Found."},
		{"bad-request", http.StatusBadRequest, `{"error":{"message":"invalid status"}}`, api.KindUpstream, "invalid status"},
		{"server-error-plain", http.StatusInternalServerError, "upstream exploded", api.KindUpstream, "upstream exploded"},
		{"server-error-empty", http.StatusBadGateway, "", api.KindUpstream, "Bad Gateway"},
	}

	for _, st := range subtests {
		t.Run(st.name, func(t *testing.T) {
			c, transport := newTestClient(t, time.Second)
			transport.RegisterResponder(http.MethodGet, testBase+"/api/v0/hosts/h1",
				httpmock.NewStringResponder(st.status, st.body))

			_, err := c.Do(context.Background(), api.Request{Method: http.MethodGet, Path: "/hosts/h1"})
			require.Error(t, err)

			e := api.AsError(err)
			assert.Equal(t, st.kind, e.Kind)
			assert.Equal(t, st.status, e.Status)
			assert.Equal(t, st.message, e.Message)
		})
	}
}

func TestClientDoTransportFailure(t *testing.T) {
	c, transport := newTestClient(t, time.Second)
	transport.RegisterResponder(http.MethodGet, testBase+"/api/v0/services",
		httpmock.NewErrorResponder(io.ErrUnexpectedEOF))

	_, err := c.Do(context.Background(), api.Request{Method: http.MethodGet, Path: "/services"})
	require.Error(t, err)
	assert.Equal(t, api.KindUpstream, api.KindOf(err))
}

func TestClientDoTimeout(t *testing.T) {
	c, transport := newTestClient(t, 20*time.Millisecond)
	transport.RegisterResponder(http.MethodGet, testBase+"/api/v0/alerts",
		func(req *http.Request) (*http.Response, error) {
			<-req.Context().Done()
			return nil, req.Context().Err()
		})

	start := time.Now()
	_, err := c.Do(context.Background(), api.Request{Method: http.MethodGet, Path: "/alerts"})
	require.Error(t, err)
	assert.Equal(t, api.KindUpstream, api.KindOf(err))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestMetricValueJSON(t *testing.T) {
	raw, err := json.Marshal([]MetricValue{
		{HostID: "h1", Name: "custom.a", Time: 100, Value: 1.5},
		{Name: "custom.b", Time: 100, Value: 2},
	})
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"hostId":"h1","name":"custom.a","time":100,"value":1.5},{"name":"custom.b","time":100,"value":2}]`,
		string(raw))
}
