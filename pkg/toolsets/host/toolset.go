package host

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
)

// Toolset represents the host toolset
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "host"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	return dispatch.ServerTools(hostSpecs()...)
}

func init() {
	toolsets.Register(&Toolset{})
}
