package metric

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
)

// now is replaced in tests.
var now = time.Now

func metricSpecs() []dispatch.Spec {
	target := [][]string{{"host_id", "service_name"}}

	return []dispatch.Spec{
		{
			Name: "post_metrics",
			Description: "Post metric values for a host or a service. " +
				"Give exactly one of host_id or service_name. Each metric needs a name and a value; " +
				"time is a Unix timestamp in seconds and defaults to now",
			Params: []dispatch.Param{
				{Name: "host_id", Type: dispatch.TypeString, In: dispatch.InCustom, Description: "Host to post host metrics for"},
				{Name: "service_name", Type: dispatch.TypeString, In: dispatch.InPath, Description: "Service to post service metrics for"},
				{
					Name:        "metrics",
					Type:        dispatch.TypeArray,
					Items:       dispatch.TypeObject,
					Required:    true,
					In:          dispatch.InCustom,
					Description: `Metric values, e.g. [{"name":"custom.queue.length","value":12,"time":1700000000}]`,
				},
			},
			OneOf: target,
			Routes: []dispatch.Route{
				{When: "host_id", Method: http.MethodPost, Path: "/tsdb"},
				{When: "service_name", Method: http.MethodPost, Path: "/services/{service_name}/tsdb"},
			},
			Body:       metricValues,
			Projection: dispatch.Ack(),
		},
		{
			Name: "get_metrics",
			Description: "Get the values of one metric of a host or a service within a time range. " +
				"Give exactly one of host_id or service_name",
			Params: []dispatch.Param{
				{Name: "host_id", Type: dispatch.TypeString, In: dispatch.InPath, Description: "Host whose metric to read"},
				{Name: "service_name", Type: dispatch.TypeString, In: dispatch.InPath, Description: "Service whose metric to read"},
				{Name: "name", Type: dispatch.TypeString, Required: true, In: dispatch.InQuery, Description: "Metric name, e.g. loadavg5"},
				{Name: "from", Type: dispatch.TypeInteger, Required: true, In: dispatch.InQuery, Description: "Start of the range (Unix seconds)"},
				{Name: "to", Type: dispatch.TypeInteger, Required: true, In: dispatch.InQuery, Description: "End of the range (Unix seconds)"},
			},
			OneOf: target,
			Routes: []dispatch.Route{
				{When: "host_id", Method: http.MethodGet, Path: "/hosts/{host_id}/metrics"},
				{When: "service_name", Method: http.MethodGet, Path: "/services/{service_name}/metrics"},
			},
			Projection: dispatch.ListOf("metrics", dispatch.Rename("timestamp", "time"), dispatch.Field{Name: "value"}),
		},
	}
}

type metricInput struct {
	Name  string   `mapstructure:"name"`
	Value *float64 `mapstructure:"value"`
	Time  *float64 `mapstructure:"time"`
}

// metricValues builds the tsdb payload from the "metrics" argument.
func metricValues(args dispatch.Args) (any, error) {
	var inputs []metricInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &inputs,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, api.Internal("can't create metrics decoder: %s", err)
	}
	if err := dec.Decode(args.List("metrics")); err != nil {
		return nil, api.InvalidArgument("argument \"metrics\": %s", err)
	}

	hostID := args.String("host_id")
	ts := now().Unix()

	values := make([]mackerel.MetricValue, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			return nil, api.InvalidArgument("argument \"metrics\": item %d: name is required", i)
		}
		if in.Value == nil {
			return nil, api.InvalidArgument("argument \"metrics\": item %d: value is required", i)
		}

		t := ts
		if in.Time != nil {
			if *in.Time < 0 || *in.Time != math.Trunc(*in.Time) || *in.Time >= 1<<53 {
				return nil, api.InvalidArgument(
					"argument \"metrics\": item %d: time must be a non-negative whole number of seconds", i)
			}
			if *in.Time > 0 {
				t = int64(*in.Time)
			}
		}

		values = append(values, mackerel.MetricValue{
			HostID: hostID,
			Name:   in.Name,
			Time:   t,
			Value:  *in.Value,
		})
	}

	return values, nil
}
