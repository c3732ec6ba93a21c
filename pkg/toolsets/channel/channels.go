package channel

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
)

var channelFields = dispatch.F(
	"id", "name", "type", "emails", "userIds", "url",
	"mentions", "enabledGraphImage", "events",
)

func channelSpecs() []dispatch.Spec {
	return []dispatch.Spec{
		{
			Name:        "list_notification_channels",
			Description: "List notification channels",
			Routes:      dispatch.Get("/channels"),
			Projection:  dispatch.ListOf("channels", channelFields...),
		},
		{
			Name:        "create_notification_channel",
			Description: "Create an email, Slack or webhook notification channel",
			Params: []dispatch.Param{
				{Name: "name", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Description: "Channel name"},
				{Name: "type", Type: dispatch.TypeString, Required: true, In: dispatch.InBody, Enum: dispatch.Enum(mackerel.ChannelTypes...), Description: "Channel type"},
				{Name: "emails", Type: dispatch.TypeArray, Items: dispatch.TypeString, In: dispatch.InBody, Description: "Recipient addresses (email)"},
				{Name: "user_ids", Type: dispatch.TypeArray, Items: dispatch.TypeString, In: dispatch.InBody, Key: "userIds", Description: "Recipient user IDs (email)"},
				{Name: "url", Type: dispatch.TypeString, In: dispatch.InBody, Description: "Incoming webhook URL (slack, webhook)"},
				{Name: "mentions", Type: dispatch.TypeObject, In: dispatch.InBody, Description: `Mentions per alert status (slack), e.g. {"critical":"@here"}`},
				{Name: "enabled_graph_image", Type: dispatch.TypeBoolean, In: dispatch.InBody, Key: "enabledGraphImage", Description: "Attach graph images (slack)"},
				{
					Name:        "events",
					Type:        dispatch.TypeArray,
					Items:       dispatch.TypeString,
					In:          dispatch.InBody,
					Enum:        []string{"alert", "alertGroup", "hostStatus", "hostRegister", "hostRetire", "monitor"},
					Description: "Events to notify about",
				},
			},
			Routes:     dispatch.Post("/channels"),
			Projection: dispatch.ObjectOf("channel", channelFields...),
		},
		{
			Name:        "delete_notification_channel",
			Description: "Delete a notification channel",
			Params: []dispatch.Param{
				dispatch.PathParam("channel_id", "Channel ID"),
			},
			Routes:     dispatch.Delete("/channels/{channel_id}"),
			Projection: dispatch.Ack(),
		},
	}
}
