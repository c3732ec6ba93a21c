package downtime

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
)

var downtimeFields = dispatch.F(
	"id", "name", "memo", "start", "duration", "recurrence",
	"serviceScopes", "serviceExcludeScopes",
	"roleScopes", "roleExcludeScopes",
	"monitorScopes", "monitorExcludeScopes",
)

func scopeParam(name, key, description string) dispatch.Param {
	return dispatch.Param{
		Name:        name,
		Type:        dispatch.TypeArray,
		Items:       dispatch.TypeString,
		In:          dispatch.InBody,
		Key:         key,
		Description: description,
	}
}

func downtimeParams() []dispatch.Param {
	return []dispatch.Param{
		{Name: "name", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Description: "Downtime name"},
		{Name: "memo", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Free-form note"},
		{Name: "start", Type: dispatch.TypeInteger, Required: true, In: dispatch.InBody, Description: "Start time (Unix seconds)"},
		{Name: "duration", Type: dispatch.TypeInteger, Required: true, In: dispatch.InBody, Description: "Length in minutes"},
		{
			Name:        "recurrence",
			Type:        dispatch.TypeObject,
			In:          dispatch.InBody,
			Description: `Repeat settings, e.g. {"type":"weekly","interval":1,"weekdays":["Monday"]}`,
		},
		scopeParam("service_scopes", "serviceScopes", "Services whose alerts are suppressed"),
		scopeParam("service_exclude_scopes", "serviceExcludeScopes", "Services excluded from suppression"),
		scopeParam("role_scopes", "roleScopes", "service:role pairs whose alerts are suppressed"),
		scopeParam("role_exclude_scopes", "roleExcludeScopes", "service:role pairs excluded from suppression"),
		scopeParam("monitor_scopes", "monitorScopes", "Monitor IDs whose alerts are suppressed"),
		scopeParam("monitor_exclude_scopes", "monitorExcludeScopes", "Monitor IDs excluded from suppression"),
	}
}

func downtimeSpecs() []dispatch.Spec {
	downtimeID := dispatch.PathParam("downtime_id", "Downtime ID")

	return []dispatch.Spec{
		{
			Name:        "list_downtimes",
			Description: "List scheduled downtimes with their window and scopes",
			Routes:      dispatch.Get("/downtimes"),
			Projection:  dispatch.ListOf("downtimes", downtimeFields...),
		},
		{
			Name:        "create_downtime",
			Description: "Schedule a downtime that suppresses alerts for the given scopes",
			Params:      downtimeParams(),
			Routes:      dispatch.Post("/downtimes"),
			Projection:  dispatch.ObjectOf("downtime", downtimeFields...),
		},
		{
			Name:        "update_downtime",
			Description: "Replace the configuration of a downtime",
			Params:      append([]dispatch.Param{downtimeID}, downtimeParams()...),
			Routes:      dispatch.Put("/downtimes/{downtime_id}"),
			Projection:  dispatch.ObjectOf("downtime", downtimeFields...),
		},
		{
			Name:        "delete_downtime",
			Description: "Delete a downtime",
			Params:      []dispatch.Param{downtimeID},
			Routes:      dispatch.Delete("/downtimes/{downtime_id}"),
			Projection:  dispatch.Ack(),
		},
	}
}
