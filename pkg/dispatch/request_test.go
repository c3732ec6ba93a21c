package dispatch

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

func TestRequest(t *testing.T) {
	spec := Spec{
		Name: "update_thing",
		Params: []Param{
			PathParam("id", "ID"),
			{Name: "tags", Type: TypeArray, Items: TypeString, In: InQuery},
			{Name: "with_closed", Type: TypeBoolean, In: InQuery, Key: "withClosed"},
			{Name: "is_mute", Type: TypeBoolean, In: InBody, Key: "isMute"},
			{Name: "warning", Type: TypeNumber, In: InBody},
		},
		Routes: Put("/things/{id}"),
	}

	req, err := spec.Request(Args{
		"id":          "a/b c",
		"tags":        []any{"x", "y"},
		"with_closed": true,
		"is_mute":     false,
		"warning":     2.5,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/things/a%2Fb%20c", req.Path)
	assert.Equal(t, url.Values{"tags": {"x", "y"}, "withClosed": {"true"}}, req.Query)
	assert.Equal(t, map[string]any{"isMute": false, "warning": 2.5}, req.Body)
}

func TestRequestBodyByMethod(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
		body   any
	}{
		{"get", Get("/x"), nil},
		{"delete", Delete("/x"), nil},
		{"post", Post("/x"), map[string]any{}},
		{"put", Put("/x"), map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Spec{Name: "x", Routes: tt.routes}

			req, err := spec.Request(Args{})
			require.NoError(t, err)
			assert.Equal(t, tt.body, req.Body)
			assert.Nil(t, req.Query)
		})
	}
}

func TestRequestRouteSelection(t *testing.T) {
	spec := Spec{
		Name: "get_metrics",
		Params: []Param{
			{Name: "host_id", Type: TypeString, In: InPath},
			{Name: "service_name", Type: TypeString, In: InPath},
			{Name: "from", Type: TypeInteger, In: InQuery},
		},
		Routes: []Route{
			{When: "host_id", Method: http.MethodGet, Path: "/hosts/{host_id}/metrics"},
			{When: "service_name", Method: http.MethodGet, Path: "/services/{service_name}/metrics"},
		},
	}

	req, err := spec.Request(Args{"service_name": "web", "from": int64(100)})
	require.NoError(t, err)
	assert.Equal(t, "/services/web/metrics", req.Path)
	assert.Equal(t, "100", req.Query.Get("from"))

	_, err = spec.Request(Args{})
	require.Error(t, err)
	assert.Equal(t, api.KindInternal, api.KindOf(err))
}

func TestRequestCustomBody(t *testing.T) {
	spec := Spec{
		Name:   "post",
		Params: []Param{{Name: "values", Type: TypeArray, In: InCustom}},
		Routes: Post("/tsdb"),
		Body: func(args Args) (any, error) {
			return args.List("values"), nil
		},
	}

	req, err := spec.Request(Args{"values": []any{1.0}})
	require.NoError(t, err)
	assert.Equal(t, []any{1.0}, req.Body)
}

func TestExpandPathMissingArgument(t *testing.T) {
	_, err := expandPath("/hosts/{host_id}", Args{})
	require.Error(t, err)
	assert.Equal(t, api.KindInternal, api.KindOf(err))

	_, err = expandPath("/hosts/{host_id", Args{"host_id": "h1"})
	require.Error(t, err)
}
