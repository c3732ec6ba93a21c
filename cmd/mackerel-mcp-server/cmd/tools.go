package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ryuichi1208/mackerel-mcp-server/pkg/api"
	"github.com/ryuichi1208/mackerel-mcp-server/pkg/toolsets"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the available tools",
	Long:  "Print every tool with its required arguments and description. No API key is needed.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printTools(cmd.OutOrStdout(), toolsets.All())
	},
}

func printTools(w io.Writer, sets []api.Toolset) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TOOLSET\tTOOL\tREQUIRED\tDESCRIPTION")

	for _, ts := range sets {
		for _, tool := range ts.GetTools() {
			required := "-"
			if s := tool.Tool.InputSchema; s != nil && len(s.Required) > 0 {
				required = strings.Join(s.Required, ",")
			}

			desc, _, _ := strings.Cut(tool.Tool.Description, ". ")
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ts.Name(), tool.Tool.Name, required, desc)
		}
	}

	return tw.Flush()
}
