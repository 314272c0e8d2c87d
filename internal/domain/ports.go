package domain

import "context"

// FileEnumerator lists candidate source files below a root directory.
type FileEnumerator interface {
	Enumerate(root string, include, exclude []string) ([]string, error)
}

// SourceParser turns source text into a ParsedFile.
type SourceParser interface {
	Language() Language
	Extensions() []string
	Parse(ctx context.Context, source []byte, path string) (*ParsedFile, error)
}

// ParserRegistry resolves a parser for a file path by extension.
type ParserRegistry interface {
	Lookup(path string) (SourceParser, bool)
	Extensions() []string
}

// SourceReader reads file contents.
type SourceReader interface {
	ReadFile(path string) ([]byte, error)
}

// ConfigLoader loads project-level scan configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// ReportHistory stores a summary of every scan.
type ReportHistory interface {
	Save(projectPath string, entry HistoryEntry) error
	Load(projectPath string) ([]HistoryEntry, error)
}

// GitInfo reads repository metadata.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
}
