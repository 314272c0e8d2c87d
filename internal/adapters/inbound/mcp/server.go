package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
)

// NewServer creates an MCP server with every aiready tool and resource
// registered. projectPath is the root of the project to analyze.
func NewServer(projectPath string, log logrus.FieldLogger) *server.MCPServer {
	s := server.NewMCPServer(
		"aiready",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := newHandlers(projectPath, log)
	registerTools(s, h)
	registerResources(s, h)

	return s
}
