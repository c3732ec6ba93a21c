package main

import (
	"fmt"
	"os"

	"github.com/ryuichi1208/mackerel-mcp-server/cmd/mackerel-mcp-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
