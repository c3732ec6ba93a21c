package monitor

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
)

var monitorFields = dispatch.F(
	"id", "type", "name", "memo", "isMute",
	"duration", "metric", "operator", "warning", "critical",
	"maxCheckAttempts", "notificationInterval",
	"scopes", "excludeScopes", "service", "url", "expression",
)

// monitorParams are the writable monitor attributes shared by create_monitor and update_monitor.
// Which of them apply depends on the monitor type.
func monitorParams() []dispatch.Param {
	return []dispatch.Param{
		{Name: "type", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Enum: dispatch.Enum(mackerel.MonitorTypes...), Description: "Monitor type"},
		{Name: "name", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Description: "Monitor name"},
		{Name: "memo", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Free-form note"},
		{Name: "duration", Type: dispatch.TypeInteger, In: dispatch.InBody, Description: "Average the metric over this many minutes (host/service)"},
		{Name: "metric", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Metric name to evaluate (host/service)"},
		{Name: "operator", Type: dispatch.TypeString, In: dispatch.InBody, Enum: []string{">", "<"}, Description: "Comparison against the thresholds"},
		{Name: "warning", Type: dispatch.TypeNumber, In: dispatch.InBody, Description: "Warning threshold"},
		{Name: "critical", Type: dispatch.TypeNumber, In: dispatch.InBody, Description: "Critical threshold"},
		{Name: "service", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Service name (service monitors)"},
		{Name: "url", Type: dispatch.TypeString, In: dispatch.InBody, Description: "URL to check (external monitors)"},
		{Name: "expression", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Graph expression (expression monitors)"},
		{Name: "scopes", Type: dispatch.TypeArray, Items: dispatch.TypeString, In: dispatch.InBody, Description: "Services or service:role pairs to monitor"},
		{Name: "exclude_scopes", Type: dispatch.TypeArray, Items: dispatch.TypeString, In: dispatch.InBody, Key: "excludeScopes", Description: "Services or service:role pairs to skip"},
		{Name: "max_check_attempts", Type: dispatch.TypeInteger, In: dispatch.InBody, Key: "maxCheckAttempts", Description: "Consecutive failures before alerting"},
		{Name: "notification_interval", Type: dispatch.TypeInteger, In: dispatch.InBody, Key: "notificationInterval", Description: "Minutes between repeated notifications"},
		{Name: "is_mute", Type: dispatch.TypeBoolean, In: dispatch.InBody, Key: "isMute", Description: "Mute the monitor"},
	}
}

func monitorSpecs() []dispatch.Spec {
	monitorID := dispatch.PathParam("monitor_id", "Monitor ID")

	return []dispatch.Spec{
		{
			Name:        "list_monitors",
			Description: "List all monitors with their type, thresholds and scopes",
			Routes:      dispatch.Get("/monitors"),
			Projection:  dispatch.ListOf("monitors", monitorFields...),
		},
		{
			Name:        "get_monitor",
			Description: "Get a single monitor by ID",
			Params:      []dispatch.Param{monitorID},
			Routes:      dispatch.Get("/monitors/{monitor_id}"),
			Projection:  dispatch.ObjectOf("monitor", monitorFields...),
		},
		{
			Name:        "create_monitor",
			Description: "Create a monitor. Returns the created monitor including its new ID",
			Params:      monitorParams(),
			Routes:      dispatch.Post("/monitors"),
			Projection:  dispatch.ObjectOf("monitor", monitorFields...),
		},
		{
			Name: "update_monitor",
			Description: "Replace the configuration of a monitor. " +
				"Attributes that are not given are reset, so pass the full configuration",
			Params:     append([]dispatch.Param{monitorID}, monitorParams()...),
			Routes:     dispatch.Put("/monitors/{monitor_id}"),
			Projection: dispatch.ObjectOf("monitor", monitorFields...),
		},
		{
			Name:        "delete_monitor",
			Description: "Delete a monitor",
			Params:      []dispatch.Param{monitorID},
			Routes:      dispatch.Delete("/monitors/{monitor_id}"),
			Projection:  dispatch.Ack(),
		},
	}
}
