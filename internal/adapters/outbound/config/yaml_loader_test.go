package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appconfig "github.com/aiready/aiready/internal/adapters/outbound/config"
	"github.com/aiready/aiready/internal/domain"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := appconfig.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".aiready.yaml", `
include: ["src/**"]
exclude: ["**/migrations/**"]
min_severity: minor
checks:
  magic_literals: false
similarity_threshold: 0.8
cluster_min_size: 4
concurrency: 2
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/**"}, cfg.Include)
	assert.Equal(t, []string{"**/migrations/**"}, cfg.Exclude)
	assert.Equal(t, "minor", cfg.MinSeverity)
	require.NotNil(t, cfg.Checks.MagicLiterals)
	assert.False(t, *cfg.Checks.MagicLiterals)
	assert.Nil(t, cfg.Checks.DeadCode)
	require.NotNil(t, cfg.SimilarityThreshold)
	assert.InDelta(t, 0.8, *cfg.SimilarityThreshold, 0.001)
	assert.Equal(t, 4, *cfg.ClusterMinSize)
	assert.Equal(t, 2, *cfg.Concurrency)

	opts, err := cfg.ScanOptions(dir)
	require.NoError(t, err)
	assert.False(t, opts.CheckMagicLiterals)
	assert.True(t, opts.CheckDeadCode)
	assert.Equal(t, domain.SeverityMinor, opts.MinSeverity)
}

func TestYAMLLoader_YmlFallback(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".aiready.yml", "callback_depth: 4\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg.CallbackDepth)
	assert.Equal(t, 4, *cfg.CallbackDepth)
}

func TestYAMLLoader_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".aiready.yaml", "")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".aiready.yaml", `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .aiready.yaml")
}

func TestYAMLLoader_UnknownField(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".aiready.yaml", "min_severty: major\n")

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_severty")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"severity", "min_severity: urgent\n"},
		{"threshold", "similarity_threshold: 1.5\n"},
		{"cluster size", "cluster_min_size: 1\n"},
		{"callback depth", "callback_depth: 0\n"},
		{"glob", "include: [\"src/[\"]\n"},
		{"conflicting globs", "include: [\"a/**\"]\nexclude: [\"a/**\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ".aiready.yaml", tt.content)

			_, err := appconfig.New().Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
			assert.Contains(t, err.Error(), "invalid .aiready.yaml")
		})
	}
}
