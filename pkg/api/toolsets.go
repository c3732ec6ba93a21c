package api

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"go.uber.org/zap"
)

// ServerTool represents a tool that can be registered with the MCP server
type ServerTool struct {
	Tool    Tool            // Tool metadata and schema
	Handler ToolHandlerFunc // Function to execute the tool
}

// Tool represents a tool definition
type Tool struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// Toolset represents a collection of related tools
type Toolset interface {
	// Name returns the toolset name
	Name() string

	// GetTools returns all tools in this toolset
	GetTools() []ServerTool
}

// ToolCallRequest provides access to tool call arguments
type ToolCallRequest interface {
	GetArguments() map[string]any
}

// ToolCallResult represents the result of a tool call.
// Data is the projected value Content was rendered from.
type ToolCallResult struct {
	Content string
	Data    any
	Error   error
}

// NewToolCallResult creates a new ToolCallResult
func NewToolCallResult(content string, data any, err error) *ToolCallResult {
	return &ToolCallResult{
		Content: content,
		Data:    data,
		Error:   err,
	}
}

// ToolHandlerFunc is the signature for tool handler functions
type ToolHandlerFunc func(params ToolHandlerParams) (*ToolCallResult, error)

// ToolHandlerParams contains all parameters passed to a tool handler
type ToolHandlerParams struct {
	context.Context
	Client          Client
	Logger          *zap.SugaredLogger
	ToolCallRequest ToolCallRequest
}

// Arguments is a plain ToolCallRequest backed by a map
type Arguments map[string]any

var _ ToolCallRequest = Arguments(nil)

// GetArguments returns the tool call arguments
func (a Arguments) GetArguments() map[string]any {
	return a
}
