package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/version"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server
type Server struct {
	server     *mcp.Server
	dispatcher *dispatch.Dispatcher
	logger     *zap.SugaredLogger
}

// NewServer creates a new MCP server exposing every tool of the dispatcher
func NewServer(dispatcher *dispatch.Dispatcher, logger *zap.SugaredLogger) *Server {
	s := &Server{
		dispatcher: dispatcher,
		logger:     logger,
	}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    version.BinaryName,
			Version: version.Version,
		},
		&mcp.ServerOptions{
			Capabilities: &mcp.ServerCapabilities{
				Tools: &mcp.ToolCapabilities{},
			},
		},
	)

	tools := dispatcher.Tools()
	for _, tool := range tools {
		s.server.AddTool(s.toMCPTool(tool))
	}
	logger.Debugf("Registered %d tools", len(tools))

	return s
}

// ServeStdio runs the server over stdin/stdout until ctx is done or the client disconnects.
// With logProtocol set, every JSON-RPC message is copied to stderr.
func (s *Server) ServeStdio(ctx context.Context, logProtocol bool) error {
	var transport mcp.Transport = &mcp.StdioTransport{}
	if logProtocol {
		transport = &mcp.LoggingTransport{
			Transport: transport,
			Writer:    os.Stderr,
		}
	}

	s.logger.Info("Serving MCP over STDIO")

	return s.server.Run(ctx, transport)
}

// ServeHTTP serves MCP over SSE on / and Prometheus metrics on /metrics until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", mcp.NewSSEHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Infow("Serving MCP over HTTP", "addr", addr, "sse", "/", "metrics", "/metrics")

		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "can't serve HTTP")
		}

		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		s.logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Wrap(httpServer.Shutdown(shutdownCtx), "can't shut down HTTP server")
	})

	return g.Wait()
}

func (s *Server) toMCPTool(tool api.ServerTool) (*mcp.Tool, mcp.ToolHandler) {
	mcpTool := &mcp.Tool{
		Name:        tool.Tool.Name,
		Description: tool.Tool.Description,
		InputSchema: tool.Tool.InputSchema,
	}

	handler := func(ctx context.Context, request *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, arguments, err := decodeRequest(request)
		if err != nil {
			return nil, err
		}

		result := s.dispatcher.Call(ctx, name, arguments)

		return NewTextResult(result.Content, result.Error), nil
	}

	return mcpTool, handler
}

func decodeRequest(request *mcp.CallToolRequest) (string, map[string]any, error) {
	params, ok := request.GetParams().(*mcp.CallToolParamsRaw)
	if !ok {
		return "", nil, errors.New("invalid tool call parameters")
	}

	arguments := map[string]any{}
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &arguments); err != nil {
			return "", nil, errors.Wrapf(err, "can't decode arguments of tool %s", params.Name)
		}
	}

	return params.Name, arguments, nil
}

type errorPayload struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    api.ErrorKind `json:"kind"`
	Message string        `json:"message"`
	Status  int           `json:"status,omitempty"`
}

// ErrorText renders err as {"error":{"kind":..,"message":..,"status":..}}.
func ErrorText(err error) string {
	e := api.AsError(err)

	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	payload, mErr := json.Marshal(errorPayload{Error: errorBody{
		Kind:    e.Kind,
		Message: msg,
		Status:  e.Status,
	}})
	if mErr != nil {
		return err.Error()
	}

	return string(payload)
}

// NewTextResult creates a text result
func NewTextResult(content string, err error) *mcp.CallToolResult {
	if err != nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: ErrorText(err),
				},
			},
			IsError: true,
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: content,
			},
		},
	}
}
