package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aiready/aiready/internal/application"
)

const (
	reportURI  = "aiready://report"
	historyURI = "aiready://history"
)

// registerResources registers all aiready MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Readiness Report",
			mcplib.WithResourceDescription("Full AI-readiness report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleReportResource,
	)

	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Scan History",
			mcplib.WithResourceDescription("Scores recorded by previous CLI scans"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleHistoryResource,
	)
}

func (h *handlers) handleReportResource(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	report, err := h.project.ScanProject(ctx, h.projectPath, application.Overrides{})
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}
	return jsonResource(reportURI, report)
}

func (h *handlers) handleHistoryResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	entries, err := h.history.Load(h.projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return jsonResource(historyURI, entries)
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
