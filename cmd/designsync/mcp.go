package main

import (
	"github.com/spf13/cobra"

	"github.com/yacobolo/designsync/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve designsync tools over MCP on stdio",
	Long:  `Run a Model Context Protocol server on stdin/stdout. Logs go to stderr.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := newEngine(newLogger(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		return mcpserver.New(engine, version).ServeStdio()
	},
}

func init() {
	addCacheSizeFlag(mcpCmd)
}
