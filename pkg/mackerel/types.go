package mackerel

// HostStatus is the operational status of a host.
type HostStatus string

const (
	HostStatusWorking     HostStatus = "working"
	HostStatusStandby     HostStatus = "standby"
	HostStatusMaintenance HostStatus = "maintenance"
	HostStatusPoweroff    HostStatus = "poweroff"
)

// HostStatuses lists every status accepted by the status update endpoint.
var HostStatuses = []HostStatus{HostStatusWorking, HostStatusStandby, HostStatusMaintenance, HostStatusPoweroff}

// MonitorType is the kind of check a monitor performs.
type MonitorType string

const (
	MonitorTypeHost             MonitorType = "host"
	MonitorTypeConnectivity     MonitorType = "connectivity"
	MonitorTypeService          MonitorType = "service"
	MonitorTypeExternal         MonitorType = "external"
	MonitorTypeExpression       MonitorType = "expression"
	MonitorTypeAnomalyDetection MonitorType = "anomalyDetection"
)

var MonitorTypes = []MonitorType{
	MonitorTypeHost,
	MonitorTypeConnectivity,
	MonitorTypeService,
	MonitorTypeExternal,
	MonitorTypeExpression,
	MonitorTypeAnomalyDetection,
}

// ChannelType is a notification channel type that can be created through the API.
type ChannelType string

const (
	ChannelTypeEmail   ChannelType = "email"
	ChannelTypeSlack   ChannelType = "slack"
	ChannelTypeWebhook ChannelType = "webhook"
)

var ChannelTypes = []ChannelType{ChannelTypeEmail, ChannelTypeSlack, ChannelTypeWebhook}

// MetricValue is a single data point as posted to the time series endpoints.
// HostID is only set for host metrics.
type MetricValue struct {
	HostID string  `json:"hostId,omitempty"`
	Name   string  `json:"name"`
	Time   int64   `json:"time"`
	Value  float64 `json:"value"`
}
