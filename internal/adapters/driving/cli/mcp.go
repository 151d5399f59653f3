package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docgrep/internal/adapters/driving/mcp"
)

var mcpHidden bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve [PATH...]",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can open and
search documents. Any PATH arguments are opened before the server starts.

By default the server speaks JSON-RPC over stdio. Use --port to serve
HTTP instead, for example to connect the MCP Inspector.

Examples:
  # Stdio mode
  docgrep mcp serve ./docs

  # HTTP mode
  docgrep mcp serve --port 8080 ./docs`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolVar(&mcpHidden, "hidden", false, "include hidden files and directories")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	// Stdin carries the protocol, so it is never read as a document here.
	if len(args) > 0 {
		if _, err := openInputs(cmd, args, mcpHidden); err != nil {
			return err
		}
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Search:   searchService,
		Document: documentService,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
