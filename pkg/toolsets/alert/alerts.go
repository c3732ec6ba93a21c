package alert

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
)

func alertSpecs() []dispatch.Spec {
	return []dispatch.Spec{
		{
			Name: "list_alerts",
			Description: "List alerts, newest first. Only open alerts are returned unless with_closed is set. " +
				"Returns the first page only",
			Params: []dispatch.Param{
				{Name: "with_closed", Type: dispatch.TypeBoolean, In: dispatch.InQuery, Key: "withClosed", Description: "Include closed alerts"},
				{Name: "limit", Type: dispatch.TypeInteger, In: dispatch.InQuery, Description: "Maximum number of alerts (API default 100)"},
			},
			Routes: dispatch.Get("/alerts"),
			Projection: dispatch.ListOf("alerts", dispatch.F(
				"id", "status", "monitorId", "type", "hostId",
				"value", "message", "reason", "openedAt", "closedAt",
			)...),
		},
		{
			Name:        "close_alert",
			Description: "Close an open alert",
			Params: []dispatch.Param{
				dispatch.PathParam("alert_id", "Alert ID"),
				{Name: "reason", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Description: "Why the alert is being closed"},
			},
			Routes:     dispatch.Post("/alerts/{alert_id}/close"),
			Projection: dispatch.Ack(),
		},
	}
}
