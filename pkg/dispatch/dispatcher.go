package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/metrics"
)

// ServerTools converts specs into registrable tools sharing the generic handler.
func ServerTools(specs ...Spec) []api.ServerTool {
	tools := make([]api.ServerTool, 0, len(specs))
	for i := range specs {
		spec := specs[i]
		tools = append(tools, api.ServerTool{
			Tool: api.Tool{
				Name:        spec.Name,
				Description: spec.Description,
				InputSchema: spec.Schema(),
			},
			Handler: spec.handle,
		})
	}

	return tools
}

// handle validates, issues exactly one upstream request and projects the response.
// Tool failures are reported in the result, never as a Go error.
func (s Spec) handle(params api.ToolHandlerParams) (*api.ToolCallResult, error) {
	fail := func(err error) (*api.ToolCallResult, error) {
		e := api.AsError(err)
		if e.Tool == "" {
			e.Tool = s.Name
		}

		return api.NewToolCallResult("", nil, e), nil
	}

	args, err := s.Validate(params.ToolCallRequest.GetArguments())
	if err != nil {
		return fail(err)
	}

	req, err := s.Request(args)
	if err != nil {
		return fail(err)
	}

	if params.Logger != nil {
		params.Logger.Debugw("Calling Mackerel API", "method", req.Method, "path", req.Path)
	}

	raw, err := params.Client.Do(params.Context, req)
	if err != nil {
		return fail(err)
	}

	data, err := s.Projection.Apply(raw)
	if err != nil {
		return fail(err)
	}

	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fail(api.Internal("can't encode result: %s", err))
	}

	return api.NewToolCallResult(string(content), data, nil), nil
}

// UnknownTool is the metrics label for calls naming an unregistered tool.
const UnknownTool = "unknown"

// Dispatcher routes tool calls by name. It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	client api.Client
	logger *zap.SugaredLogger
	tools  map[string]api.ServerTool
	order  []string
}

// NewDispatcher indexes the tools of all toolsets. Duplicate tool names are an error.
func NewDispatcher(client api.Client, logger *zap.SugaredLogger, toolsets ...api.Toolset) (*Dispatcher, error) {
	d := &Dispatcher{
		client: client,
		logger: logger,
		tools:  make(map[string]api.ServerTool),
	}

	for _, ts := range toolsets {
		for _, tool := range ts.GetTools() {
			if _, ok := d.tools[tool.Tool.Name]; ok {
				return nil, errors.Errorf("duplicate tool %q in toolset %s", tool.Tool.Name, ts.Name())
			}

			d.tools[tool.Tool.Name] = tool
			d.order = append(d.order, tool.Tool.Name)
		}
	}

	return d, nil
}

// Tools returns all tools in registration order.
func (d *Dispatcher) Tools() []api.ServerTool {
	tools := make([]api.ServerTool, 0, len(d.order))
	for _, name := range d.order {
		tools = append(tools, d.tools[name])
	}

	return tools
}

// Call runs a tool and always returns a result; failures are carried in its Error.
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) *api.ToolCallResult {
	logger := d.logger.With("tool", name, "call_id", uuid.NewString())
	start := time.Now()

	result := d.call(ctx, logger, name, args)

	took := time.Since(start)
	label := name
	if _, ok := d.tools[name]; !ok {
		label = UnknownTool
	}
	metrics.RecordToolCall(label, string(api.KindOf(result.Error)), took)

	if result.Error != nil {
		e := api.AsError(result.Error)
		logger.Warnw("Tool call failed", "kind", e.Kind, "status", e.Status, "error", e.Error(), "took", took)
	} else {
		logger.Debugw("Tool call finished", "took", took)
	}

	return result
}

func (d *Dispatcher) call(ctx context.Context, logger *zap.SugaredLogger, name string, args map[string]any) *api.ToolCallResult {
	tool, ok := d.tools[name]
	if !ok {
		return api.NewToolCallResult("", nil, api.InvalidArgument("unknown tool %q", name))
	}

	if args == nil {
		args = map[string]any{}
	}

	result, err := tool.Handler(api.ToolHandlerParams{
		Context:         ctx,
		Client:          d.client,
		Logger:          logger,
		ToolCallRequest: api.Arguments(args),
	})
	if err != nil {
		return api.NewToolCallResult("", nil, err)
	}

	return result
}

// Dispatch runs a tool and returns its projected result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]any) (any, error) {
	result := d.Call(ctx, name, args)
	if result.Error != nil {
		return nil, result.Error
	}

	return result.Data, nil
}
