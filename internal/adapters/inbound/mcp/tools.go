package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/aiready/aiready/internal/adapters/outbound/config"
	"github.com/aiready/aiready/internal/adapters/outbound/gitinfo"
	"github.com/aiready/aiready/internal/adapters/outbound/history"
	"github.com/aiready/aiready/internal/adapters/outbound/logging"
	"github.com/aiready/aiready/internal/adapters/outbound/parser"
	"github.com/aiready/aiready/internal/adapters/outbound/scanner"
	"github.com/aiready/aiready/internal/application"
	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
	"github.com/aiready/aiready/internal/domain/patterns"
)

// handlers share one parser registry so repeated tool calls hit the parse
// cache.
type handlers struct {
	projectPath string
	scan        *application.ScanService
	project     *application.ProjectService
	history     domain.ReportHistory
}

func newHandlers(projectPath string, log logrus.FieldLogger) *handlers {
	if log == nil {
		log = logging.Discard()
	}
	registry := parser.DefaultRegistry()
	scan := application.NewScanService(registry, scanner.NewReader(0), naming.DefaultConventions(), log)
	return &handlers{
		projectPath: projectPath,
		scan:        scan,
		project:     application.NewProjectService(scanner.New(registry.Extensions()), config.New(), scan, gitinfo.New()),
		history:     history.New(),
	}
}

// registerTools registers all aiready MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("aiready_scan",
			mcplib.WithDescription("Scan the whole project and return the AI-readiness report as JSON"),
			mcplib.WithString("min_severity", mcplib.Description("Hide issues below this severity (info, minor, major, critical)")),
			mcplib.WithString("include", mcplib.Description("Comma-separated globs; only matching files are scanned")),
			mcplib.WithString("exclude", mcplib.Description("Comma-separated globs of files to skip")),
		),
		h.handleScan,
	)

	s.AddTool(
		mcplib.NewTool("aiready_check_file",
			mcplib.WithDescription("Returns naming issues and ambiguity signals for a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the file, relative to the project root"),
			),
		),
		h.handleCheckFile,
	)

	s.AddTool(
		mcplib.NewTool("aiready_check_name",
			mcplib.WithDescription("Check a proposed identifier against the language's naming conventions before using it"),
			mcplib.WithString("identifier", mcplib.Required(), mcplib.Description("Identifier to check")),
			mcplib.WithString("language", mcplib.Required(), mcplib.Description("go, python, javascript or typescript")),
			mcplib.WithString("kind", mcplib.Description("function, class, const, variable, interface or type (default: function)")),
		),
		h.handleCheckName,
	)

	s.AddTool(
		mcplib.NewTool("aiready_similarity",
			mcplib.WithDescription("Compare two functions or classes and report how structurally similar they are"),
			mcplib.WithString("file_a", mcplib.Required(), mcplib.Description("File of the first symbol, relative to the project root")),
			mcplib.WithString("name_a", mcplib.Required(), mcplib.Description("Name of the first function or class")),
			mcplib.WithString("file_b", mcplib.Required(), mcplib.Description("File of the second symbol, relative to the project root")),
			mcplib.WithString("name_b", mcplib.Required(), mcplib.Description("Name of the second function or class")),
		),
		h.handleSimilarity,
	)
}

func (h *handlers) handleScan(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	ov := application.Overrides{
		Include:     splitList(request.GetString("include", "")),
		Exclude:     splitList(request.GetString("exclude", "")),
		MinSeverity: request.GetString("min_severity", ""),
	}
	report, err := h.project.ScanProject(ctx, h.projectPath, ov)
	if err != nil {
		return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleCheckFile(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	rel, err := h.relative(file)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := h.project.ScanFiles(ctx, h.projectPath, []string{rel}, application.Overrides{})
	if err != nil {
		return errorResult(fmt.Sprintf("check failed: %v", err)), nil
	}
	if len(report.Skipped) > 0 {
		sk := report.Skipped[0]
		return errorResult(fmt.Sprintf("%s skipped (%s): %s", sk.File, sk.Reason, sk.Error)), nil
	}

	result := domain.FileResult{File: rel, Issues: []domain.Issue{}, Signals: domain.NewSignals()}
	if len(report.Results) > 0 {
		result = report.Results[0]
	}
	return jsonResult(result)
}

type nameResult struct {
	Identifier string              `json:"identifier"`
	Language   domain.Language     `json:"language"`
	Kind       domain.SymbolKind   `json:"kind"`
	OK         bool                `json:"ok"`
	Issue      *domain.NamingIssue `json:"issue,omitempty"`
}

func (h *handlers) handleCheckName(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	identifier, err := request.RequireString("identifier")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	langArg, err := request.RequireString("language")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	lang, err := domain.ParseLanguage(langArg)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	kind, err := domain.ParseSymbolKind(request.GetString("kind", string(domain.KindFunction)))
	if err != nil {
		return errorResult(err.Error()), nil
	}

	res := nameResult{Identifier: identifier, Language: lang, Kind: kind, OK: true}
	if issue, flagged := h.scan.CheckName(lang, identifier, kind); flagged {
		res.OK = false
		res.Issue = &issue
	}
	return jsonResult(res)
}

type similarityResult struct {
	First          domain.StructuralPattern `json:"first"`
	Second         domain.StructuralPattern `json:"second"`
	Similarity     float64                  `json:"similarity"`
	NameSimilarity float64                  `json:"name_similarity"`
	Threshold      float64                  `json:"threshold"`
	NearDuplicate  bool                     `json:"near_duplicate"`
}

func (h *handlers) handleSimilarity(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	var args [4]string
	for i, key := range []string{"file_a", "name_a", "file_b", "name_b"} {
		v, err := request.RequireString(key)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		args[i] = v
	}

	opts, err := h.project.Options(h.projectPath, application.Overrides{})
	if err != nil {
		return errorResult(err.Error()), nil
	}

	var found [2]domain.StructuralPattern
	for i := range found {
		rel, err := h.relative(args[2*i])
		if err != nil {
			return errorResult(err.Error()), nil
		}
		p, err := h.scan.FindPattern(ctx, h.projectPath, rel, args[2*i+1])
		if err != nil {
			return errorResult(err.Error()), nil
		}
		found[i] = p
	}

	score := patterns.Similarity(found[0], found[1])
	return jsonResult(similarityResult{
		First:          found[0],
		Second:         found[1],
		Similarity:     score,
		NameSimilarity: patterns.NameSimilarity(found[0].Name, found[1].Name),
		Threshold:      opts.SimilarityThreshold,
		NearDuplicate:  score >= opts.SimilarityThreshold,
	})
}

// relative maps a tool argument onto a slash path inside the project.
func (h *handlers) relative(file string) (string, error) {
	if filepath.IsAbs(file) {
		root, err := filepath.Abs(h.projectPath)
		if err != nil {
			return "", err
		}
		if file, err = filepath.Rel(root, file); err != nil {
			return "", err
		}
	}
	file = filepath.Clean(file)
	if file == ".." || strings.HasPrefix(file, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the project", file)
	}
	return filepath.ToSlash(file), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
