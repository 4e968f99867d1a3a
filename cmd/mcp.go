package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/daytrack/internal/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol (MCP) server for integration with AI assistants.
The server exposes tools for reading progress and managing tasks and the challenge.
It communicates over stdio, so nothing else is written to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.logger.Info("starting MCP server on stdio")

		server := mcp.NewServer(app.tracker)
		if err := server.Start(cmd.Context()); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}
