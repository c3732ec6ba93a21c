package host

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
)

func hostSpecs() []dispatch.Spec {
	statuses := dispatch.Enum(mackerel.HostStatuses...)

	return []dispatch.Spec{
		{
			Name:        "list_hosts",
			Description: "List hosts registered in Mackerel with their status, roles, memo and agent/kernel metadata",
			Params: []dispatch.Param{
				{Name: "service", Type: dispatch.TypeString, In: dispatch.InQuery, Description: "Only hosts belonging to this service"},
				{Name: "role", Type: dispatch.TypeString, In: dispatch.InQuery, Description: "Only hosts with this role (requires service)"},
				{Name: "name", Type: dispatch.TypeString, In: dispatch.InQuery, Description: "Only hosts with this name"},
				{
					Name:        "status",
					Type:        dispatch.TypeArray,
					Items:       dispatch.TypeString,
					In:          dispatch.InQuery,
					Enum:        statuses,
					Description: "Only hosts in one of these statuses (defaults to working and standby)",
				},
			},
			Routes: dispatch.Get("/hosts"),
			Projection: dispatch.ListOf("hosts",
				dispatch.Field{Name: "id"},
				dispatch.Field{Name: "name"},
				dispatch.Field{Name: "status"},
				dispatch.Field{Name: "roles"},
				dispatch.Field{Name: "memo"},
				dispatch.Nested("meta", "",
					dispatch.Rename("agent_version", "agent-version"),
					dispatch.Field{Name: "kernel"},
				),
			),
		},
		{
			Name:        "get_host",
			Description: "Get a single Mackerel host by ID",
			Params: []dispatch.Param{
				dispatch.PathParam("host_id", "Host ID"),
			},
			Routes:     dispatch.Get("/hosts/{host_id}"),
			Projection: dispatch.ObjectOf("host", dispatch.F("id", "name", "status", "roles", "memo")...),
		},
		{
			Name:        "update_host_status",
			Description: "Change the status of a host",
			Params: []dispatch.Param{
				dispatch.PathParam("host_id", "Host ID"),
				{Name: "status", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Enum: statuses, Description: "New host status"},
			},
			Routes:     dispatch.Post("/hosts/{host_id}/status"),
			Projection: dispatch.Ack(),
		},
		{
			Name:        "retire_host",
			Description: "Retire a host. Retired hosts stop being monitored and cannot be restored",
			Params: []dispatch.Param{
				dispatch.PathParam("host_id", "Host ID"),
			},
			Routes:     dispatch.Post("/hosts/{host_id}/retire"),
			Projection: dispatch.Ack(),
		},
		{
			Name:        "list_host_metric_names",
			Description: "List the names of metrics posted for a host",
			Params: []dispatch.Param{
				dispatch.PathParam("host_id", "Host ID"),
			},
			Routes:     dispatch.Get("/hosts/{host_id}/metric-names"),
			Projection: dispatch.ListOf("names"),
		},
	}
}
