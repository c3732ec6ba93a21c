package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	// Import toolsets to register them
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/alert"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/channel"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/downtime"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/host"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/metric"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/monitor"
	_ "github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets/service"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/config"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/dispatch"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/logging"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mackerel"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/mcp"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/version"
)

var (
	configPath  string
	showVersion bool
	httpMode    bool
	httpAddr    string
)

var rootCmd = &cobra.Command{
	Use:   version.BinaryName,
	Short: "MCP server for the Mackerel monitoring API",
	Long: `A Model Context Protocol (MCP) server that lets AI assistants inspect and
manage Mackerel hosts, services, metrics, monitors, alerts, downtimes and
notification channels.

The API key is read from MACKEREL_API_KEY, or MACKEREL_APIKEY if that is unset.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to an optional YAML configuration file")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
	rootCmd.Flags().BoolVar(&httpMode, "http", false, "Run in HTTP/SSE mode instead of STDIO")
	rootCmd.Flags().StringVar(&httpAddr, "http-addr", "localhost:8080", "HTTP server address (only used with --http)")

	rootCmd.AddCommand(toolsCmd)
}

// Execute runs the root command until it returns or SIGINT/SIGTERM is received.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func run(cmd *cobra.Command, _ []string) error {
	if showVersion {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		return nil
	}

	cfg, err := config.Load(configPath, env.ToMap(os.Environ()))
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	client, err := mackerel.NewClient(cfg, logger.Named("mackerel"))
	if err != nil {
		return err
	}

	allToolsets := toolsets.All()
	if len(allToolsets) == 0 {
		return errors.New("no toolsets registered")
	}

	dispatcher, err := dispatch.NewDispatcher(client, logger.Named("dispatch"), allToolsets...)
	if err != nil {
		return errors.Wrap(err, "can't build tool catalog")
	}

	logger.Infow("Starting "+version.BinaryName,
		"version", version.Version, "base_url", cfg.BaseURL, "toolsets", len(allToolsets))

	server := mcp.NewServer(dispatcher, logger.Named("mcp"))
	ctx := cmd.Context()

	if httpMode {
		if err := server.ServeHTTP(ctx, httpAddr); err != nil {
			return errors.Wrap(err, "MCP server failed")
		}
	} else {
		if err := server.ServeStdio(ctx, cfg.Logging.Protocol); err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "MCP server failed")
		}
	}

	return nil
}
