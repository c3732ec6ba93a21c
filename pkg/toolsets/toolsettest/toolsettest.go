// Package toolsettest wires toolsets to a Mackerel client backed by httpmock.
package toolsettest

import (
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/config"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
)

// BaseURL is the API root the returned transport is addressed at, including the API prefix.
const BaseURL = "https://mackerel.test" + mackerel.APIPrefix

// NewDispatcher returns a dispatcher over toolsets whose upstream is the returned mock transport.
func NewDispatcher(t testing.TB, toolsets ...api.Toolset) (*dispatch.Dispatcher, *httpmock.MockTransport) {
	t.Helper()

	transport := httpmock.NewMockTransport()
	cfg := &config.Config{APIKey: "secret", BaseURL: "https://mackerel.test", Timeout: time.Second}
	logger := zap.NewNop().Sugar()

	client, err := mackerel.NewClient(cfg, logger, mackerel.WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	d, err := dispatch.NewDispatcher(client, logger, toolsets...)
	require.NoError(t, err)

	return d, transport
}
