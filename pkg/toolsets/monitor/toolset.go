package monitor

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
)

// Toolset represents the monitor toolset
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "monitor"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	return dispatch.ServerTools(monitorSpecs()...)
}

func init() {
	toolsets.Register(&Toolset{})
}
