package toolsets_test

import (
	"context"
	"net/http"
	"regexp"
	"slices"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/toolsettest"

	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/alert"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/channel"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/downtime"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/host"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/metric"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/monitor"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/service"
)

var catalog = []string{
	"list_hosts", "get_host", "update_host_status", "retire_host", "list_host_metric_names",
	"list_services", "get_service", "list_service_roles",
	"post_metrics", "get_metrics",
	"list_monitors", "get_monitor", "create_monitor", "update_monitor", "delete_monitor",
	"list_alerts", "close_alert",
	"list_downtimes", "create_downtime", "update_downtime", "delete_downtime",
	"list_notification_channels", "create_notification_channel", "delete_notification_channel",
}

func newCatalogDispatcher(t *testing.T) (*dispatch.Dispatcher, *httpmock.MockTransport) {
	t.Helper()

	d, transport := toolsettest.NewDispatcher(t, toolsets.All()...)
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete} {
		transport.RegisterResponder(method, "=~^"+regexp.QuoteMeta(toolsettest.BaseURL)+"/", httpmock.NewStringResponder(http.StatusOK, `{}`))
	}

	return d, transport
}

func TestCatalog(t *testing.T) {
	d, _ := newCatalogDispatcher(t)

	var names []string
	for _, tool := range d.Tools() {
		names = append(names, tool.Tool.Name)

		assert.NotEmpty(t, tool.Tool.Description, tool.Tool.Name)
		require.NotNil(t, tool.Tool.InputSchema, tool.Tool.Name)
		assert.Equal(t, "object", tool.Tool.InputSchema.Type, tool.Tool.Name)
		for _, req := range tool.Tool.InputSchema.Required {
			assert.Contains(t, tool.Tool.InputSchema.Properties, req, tool.Tool.Name)
		}
	}

	assert.ElementsMatch(t, catalog, names)
	assert.Len(t, toolsets.All(), 7)
}

// placeholder returns a value that passes validation for the given property.
func placeholder(s *jsonschema.Schema) any {
	if len(s.Enum) > 0 {
		return s.Enum[0]
	}

	switch s.Type {
	case "integer":
		return float64(1)
	case "number":
		return 1.5
	case "boolean":
		return true
	case "object":
		return map[string]any{}
	case "array":
		if s.Items != nil && s.Items.Type == "object" {
			return []any{map[string]any{"name": "custom.x", "value": 1.0}}
		}
		if s.Items != nil {
			return []any{placeholder(s.Items)}
		}
		return []any{"x"}
	default:
		return "x"
	}
}

func TestMissingRequiredArgumentMakesNoCall(t *testing.T) {
	d, transport := newCatalogDispatcher(t)

	for _, tool := range d.Tools() {
		schema := tool.Tool.InputSchema
		if len(schema.Required) == 0 {
			continue
		}

		t.Run(tool.Tool.Name, func(t *testing.T) {
			result := d.Call(context.Background(), tool.Tool.Name, map[string]any{})
			assert.Equal(t, api.KindInvalidArgument, api.KindOf(result.Error), "no arguments")

			for _, omit := range schema.Required {
				args := map[string]any{}
				for _, name := range schema.Required {
					if name != omit {
						args[name] = placeholder(schema.Properties[name])
					}
				}

				result := d.Call(context.Background(), tool.Tool.Name, args)
				require.Error(t, result.Error, "without %s", omit)
				assert.Equal(t, api.KindInvalidArgument, api.KindOf(result.Error), "without %s", omit)
				assert.Contains(t, result.Error.Error(), omit)
			}
		})
	}

	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestExclusiveTargetMakesNoCall(t *testing.T) {
	d, transport := newCatalogDispatcher(t)

	for _, name := range []string{"post_metrics", "get_metrics"} {
		for _, args := range []map[string]any{
			{"name": "loadavg5", "from": 1.0, "to": 2.0, "metrics": []any{map[string]any{"name": "a", "value": 1.0}}},
			{"host_id": "h1", "service_name": "web", "name": "loadavg5", "from": 1.0, "to": 2.0, "metrics": []any{map[string]any{"name": "a", "value": 1.0}}},
		} {
			result := d.Call(context.Background(), name, args)
			assert.Equal(t, api.KindInvalidArgument, api.KindOf(result.Error), name)
		}
	}

	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestDotSegmentIdentifierMakesNoCall(t *testing.T) {
	d, transport := newCatalogDispatcher(t)
	metricsArg := []any{map[string]any{"name": "custom.a", "value": 1.0}}

	tests := []struct {
		tool string
		args map[string]any
	}{
		{"post_metrics", map[string]any{"service_name": "..", "metrics": metricsArg}},
		{"get_metrics", map[string]any{"host_id": ".", "name": "loadavg5", "from": 1.0, "to": 2.0}},
		{"delete_downtime", map[string]any{"downtime_id": ".."}},
		{"retire_host", map[string]any{"host_id": ".."}},
		{"get_host", map[string]any{"host_id": "."}},
		{"close_alert", map[string]any{"alert_id": "..", "reason": "fixed"}},
	}

	for _, tt := range tests {
		result := d.Call(context.Background(), tt.tool, tt.args)
		require.Error(t, result.Error, tt.tool)
		assert.Equal(t, api.KindInvalidArgument, api.KindOf(result.Error), tt.tool)
	}

	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestEveryToolIssuesOneRequest(t *testing.T) {
	d, transport := newCatalogDispatcher(t)

	for _, tool := range d.Tools() {
		schema := tool.Tool.InputSchema
		args := map[string]any{}
		for _, name := range schema.Required {
			args[name] = placeholder(schema.Properties[name])
		}
		if _, ok := schema.Properties["host_id"]; ok && !slices.Contains(schema.Required, "host_id") {
			args["host_id"] = "h1"
		}

		before := transport.GetTotalCallCount()
		result := d.Call(context.Background(), tool.Tool.Name, args)

		// List projections reject the {} stub body, but only after the call.
		assert.Equal(t, before+1, transport.GetTotalCallCount(), tool.Tool.Name)
		if result.Error != nil {
			assert.NotEqual(t, api.KindInvalidArgument, api.KindOf(result.Error), "%s: %s", tool.Tool.Name, result.Error)
		}
	}
}
