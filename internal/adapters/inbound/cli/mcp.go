package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/aiready/aiready/internal/adapters/inbound/mcp"
)

func newMCPCmd(st *settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
		Long:  "Expose aiready scans and name checks to AI coding assistants over MCP.",
	}
	cmd.AddCommand(newMCPServeCmd(st))
	return cmd
}

func newMCPServeCmd(st *settings) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP tools over stdio",
		Long: `Serve the aiready MCP tools over stdio. Assistants can scan the project,
check a single file, vet a proposed identifier and compare two functions
while they edit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", root)
			}

			log := st.logger()
			log.WithField("project", root).Info("serving MCP on stdio")
			return server.ServeStdio(mcpadapter.NewServer(root, log))
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", ".", "Project root the tools operate on")

	return cmd
}
