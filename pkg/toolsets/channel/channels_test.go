package channel

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/toolsettest"
)

func TestCreateSlackChannel(t *testing.T) {
	d, transport := toolsettest.NewDispatcher(t, &Toolset{})

	var body []byte
	transport.RegisterResponder(http.MethodPost, toolsettest.BaseURL+"/channels",
		func(req *http.Request) (*http.Response, error) {
			body, _ = io.ReadAll(req.Body)
			return httpmock.NewStringResponse(http.StatusOK,
				`{"id":"c1","name":"ops","type":"slack","url":"https://hooks.slack.test/x","enabledGraphImage":true,"events":["alert"]}`), nil
		})

	data, err := d.Dispatch(context.Background(), "create_notification_channel", map[string]any{
		"name":                "ops",
		"type":                "slack",
		"url":                 "https://hooks.slack.test/x",
		"mentions":            map[string]any{"critical": "@here"},
		"enabled_graph_image": true,
		"events":              []any{"alert"},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name":"ops","type":"slack","url":"https://hooks.slack.test/x",
		"mentions":{"critical":"@here"},"enabledGraphImage":true,"events":["alert"]
	}`, string(body))
	assert.Equal(t, "c1", data.(map[string]any)["id"])
}

func TestCreateChannelValidation(t *testing.T) {
	d, transport := toolsettest.NewDispatcher(t, &Toolset{})

	for _, args := range []map[string]any{
		{"name": "ops", "type": "line"},
		{"name": "ops", "type": "email", "events": []any{"everything"}},
		{"name": "ops", "type": "email", "emails": "ops@example.com"},
	} {
		result := d.Call(context.Background(), "create_notification_channel", args)
		assert.Equal(t, api.KindInvalidArgument, api.KindOf(result.Error), "%v", args)
	}
	assert.Equal(t, 0, transport.GetTotalCallCount())
}

func TestListChannels(t *testing.T) {
	d, transport := toolsettest.NewDispatcher(t, &Toolset{})
	transport.RegisterResponder(http.MethodGet, toolsettest.BaseURL+"/channels",
		httpmock.NewStringResponder(http.StatusOK,
			`{"channels":[{"id":"c1","name":"mail","type":"email","emails":["a@example.com"],"userIds":[]}]}`))

	result := d.Call(context.Background(), "list_notification_channels", nil)
	require.NoError(t, result.Error)
	assert.JSONEq(t, `[{
		"id":"c1","name":"mail","type":"email","emails":["a@example.com"],"userIds":[],
		"url":null,"mentions":null,"enabledGraphImage":null,"events":null
	}]`, result.Content)
}
