package channel

import (
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
)

// Toolset represents the channel toolset
type Toolset struct{}

// Name returns the toolset name
func (t *Toolset) Name() string {
	return "channel"
}

// GetTools returns all tools in this toolset
func (t *Toolset) GetTools() []api.ServerTool {
	return dispatch.ServerTools(channelSpecs()...)
}

func init() {
	toolsets.Register(&Toolset{})
}
