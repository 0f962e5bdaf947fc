package cmd

import (
	"github.com/spf13/cobra"

	"github.com/huangsam/wellscore/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the wellscore MCP server",
	Long:  `Launch an MCP server that allows AI agents to score wellness, read explanations and project trends via standard tools.`,
	// Logs go to stderr, so stdio stays free for the protocol.
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
