package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aiready/aiready/internal/domain"
)

// FileNames are tried in order; the first one present wins.
var FileNames = []string{".aiready.yaml", ".aiready.yml"}

// YAMLLoader implements domain.ConfigLoader by reading .aiready.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the project config from projectPath.
// Returns DefaultConfig if no config file exists.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	for _, name := range FileNames {
		data, err := os.ReadFile(filepath.Join(projectPath, name))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return domain.ProjectConfig{}, err
		}
		return parse(name, data)
	}
	return domain.DefaultConfig(), nil
}

func parse(name string, data []byte) (domain.ProjectConfig, error) {
	var cfg domain.ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty file decodes to io.EOF and means "all defaults".
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate here so typos surface with the file name attached.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}
