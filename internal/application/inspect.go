package application

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/patterns"
)

// CheckName validates a single identifier. The issue is reported with no
// file location.
func (s *ScanService) CheckName(lang domain.Language, identifier string, kind domain.SymbolKind) (domain.NamingIssue, bool) {
	return s.checker.Check(lang, identifier, kind, "", 0, 0)
}

// Patterns parses one project-relative file and returns its structural
// patterns.
func (s *ScanService) Patterns(ctx context.Context, root, file string) ([]domain.StructuralPattern, error) {
	parser, ok := s.registry.Lookup(file)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, filepath.Ext(file))
	}
	src, err := s.reader.ReadFile(filepath.Join(root, file))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err)
	}
	pf, err := parser.Parse(ctx, src, file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}
	pf.Path = file
	if pf.Language == "" {
		pf.Language = parser.Language()
	}
	return patterns.Extract(pf), nil
}

// FindPattern returns the pattern named name in file.
func (s *ScanService) FindPattern(ctx context.Context, root, file, name string) (domain.StructuralPattern, error) {
	ps, err := s.Patterns(ctx, root, file)
	if err != nil {
		return domain.StructuralPattern{}, err
	}
	for _, p := range ps {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.StructuralPattern{}, fmt.Errorf("no function or class %q in %s", name, file)
}
