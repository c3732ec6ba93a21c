package mackerel

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
)

// statusError maps a non-2xx response to an *api.Error.
func statusError(status int, body []byte) *api.Error {
	kind := api.KindUpstream
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = api.KindAuthentication
	case http.StatusNotFound:
		kind = api.KindNotFound
	}

	return &api.Error{
		Kind:    kind,
		Status:  status,
		Message: upstreamMessage(status, body),
	}
}

// upstreamMessage extracts the message from bodies shaped like
// {"error":{"message":"..."}} or {"error":"..."} and falls back to the raw body.
func upstreamMessage(status int, body []byte) string {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Error) > 0 {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}

		var plain string
		if err := json.Unmarshal(envelope.Error, &plain); err == nil && plain != "" {
			return plain
		}
	}

	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}

	return http.StatusText(status)
}
