package domain

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Default tuning values.
const (
	DefaultSimilarityThreshold = 0.75
	DefaultClusterMinSize      = 3
	DefaultCallbackDepth       = 2
)

// Progress is reported after each unit of scan work completes.
type Progress struct {
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Phase     string `json:"phase"`
}

// Progress phases.
const (
	PhaseAnalyze    = "analyze"
	PhaseDuplicates = "duplicates"
)

// ProgressFunc receives progress updates. It must not block.
type ProgressFunc func(Progress)

// ScanOptions controls one scan invocation. Start from DefaultScanOptions:
// the Check* toggles are plain bools, so a zero ScanOptions runs no
// detectors. Zero thresholds fall back to their defaults.
type ScanOptions struct {
	Root        string
	Include     []string
	Exclude     []string
	MinSeverity Severity

	CheckMagicLiterals       bool
	CheckBooleanTraps        bool
	CheckAmbiguousNames      bool
	CheckUndocumentedExports bool
	CheckImplicitSideEffects bool
	CheckDeepCallbacks       bool
	CheckDeadCode            bool

	SimilarityThreshold    float64
	ClusterMinSize         int
	CallbackDepthThreshold int
	Concurrency            int

	Progress ProgressFunc
}

// DefaultScanOptions enables every detector with default thresholds.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		MinSeverity:              SeverityInfo,
		CheckMagicLiterals:       true,
		CheckBooleanTraps:        true,
		CheckAmbiguousNames:      true,
		CheckUndocumentedExports: true,
		CheckImplicitSideEffects: true,
		CheckDeepCallbacks:       true,
		CheckDeadCode:            true,
		SimilarityThreshold:      DefaultSimilarityThreshold,
		ClusterMinSize:           DefaultClusterMinSize,
		CallbackDepthThreshold:   DefaultCallbackDepth,
	}
}

// Validate rejects malformed options. Errors wrap ErrInvalidConfig.
func (o ScanOptions) Validate() error {
	if o.MinSeverity != "" && o.MinSeverity.Rank() < 0 {
		return fmt.Errorf("%w: unknown min_severity %q (valid: info, minor, major, critical)", ErrInvalidConfig, o.MinSeverity)
	}
	if o.SimilarityThreshold < 0 || o.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold must be between 0.0 and 1.0 (got %.2f)", ErrInvalidConfig, o.SimilarityThreshold)
	}
	if o.ClusterMinSize < 0 || o.ClusterMinSize == 1 {
		return fmt.Errorf("%w: cluster_min_size must be at least 2 (got %d)", ErrInvalidConfig, o.ClusterMinSize)
	}
	if o.CallbackDepthThreshold < 0 {
		return fmt.Errorf("%w: callback_depth must be > 0 (got %d)", ErrInvalidConfig, o.CallbackDepthThreshold)
	}
	if o.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be >= 0 (got %d)", ErrInvalidConfig, o.Concurrency)
	}
	return validateGlobs(o.Include, o.Exclude)
}

func validateGlobs(include, exclude []string) error {
	seen := make(map[string]bool, len(include))
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad include pattern %q", ErrInvalidConfig, p)
		}
		seen[p] = true
	}
	for _, p := range exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: bad exclude pattern %q", ErrInvalidConfig, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: pattern %q is both included and excluded", ErrInvalidConfig, p)
		}
	}
	return nil
}

// ChecksConfig toggles detectors. Nil means "use the default" (enabled).
type ChecksConfig struct {
	MagicLiterals       *bool `yaml:"magic_literals"        json:"magic_literals,omitempty"`
	BooleanTraps        *bool `yaml:"boolean_traps"         json:"boolean_traps,omitempty"`
	AmbiguousNames      *bool `yaml:"ambiguous_names"       json:"ambiguous_names,omitempty"`
	UndocumentedExports *bool `yaml:"undocumented_exports"  json:"undocumented_exports,omitempty"`
	ImplicitSideEffects *bool `yaml:"implicit_side_effects" json:"implicit_side_effects,omitempty"`
	DeepCallbacks       *bool `yaml:"deep_callbacks"        json:"deep_callbacks,omitempty"`
	DeadCode            *bool `yaml:"dead_code"             json:"dead_code,omitempty"`
}

// ProjectConfig holds project-level configuration loaded from .aiready.yaml.
// Pointer types distinguish "not specified" from zero values.
type ProjectConfig struct {
	Include             []string     `yaml:"include"              json:"include,omitempty"`
	Exclude             []string     `yaml:"exclude"              json:"exclude,omitempty"`
	MinSeverity         string       `yaml:"min_severity"         json:"min_severity,omitempty"`
	Checks              ChecksConfig `yaml:"checks"               json:"checks,omitempty"`
	SimilarityThreshold *float64     `yaml:"similarity_threshold" json:"similarity_threshold,omitempty"`
	ClusterMinSize      *int         `yaml:"cluster_min_size"     json:"cluster_min_size,omitempty"`
	CallbackDepth       *int         `yaml:"callback_depth"       json:"callback_depth,omitempty"`
	Concurrency         *int         `yaml:"concurrency"          json:"concurrency,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.MinSeverity != "" {
		if _, err := ParseSeverity(c.MinSeverity); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.SimilarityThreshold != nil && (*c.SimilarityThreshold <= 0 || *c.SimilarityThreshold > 1) {
		return fmt.Errorf("%w: similarity_threshold must be in (0.0, 1.0] (got %.2f)", ErrInvalidConfig, *c.SimilarityThreshold)
	}
	intFields := map[string]*int{
		"cluster_min_size": c.ClusterMinSize,
		"callback_depth":   c.CallbackDepth,
	}
	for name, ptr := range intFields {
		if ptr != nil && *ptr <= 0 {
			return fmt.Errorf("%w: %s must be > 0 (got %d)", ErrInvalidConfig, name, *ptr)
		}
	}
	if c.ClusterMinSize != nil && *c.ClusterMinSize < 2 {
		return fmt.Errorf("%w: cluster_min_size must be at least 2 (got %d)", ErrInvalidConfig, *c.ClusterMinSize)
	}
	if c.Concurrency != nil && *c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be >= 0 (got %d)", ErrInvalidConfig, *c.Concurrency)
	}
	return validateGlobs(c.Include, c.Exclude)
}

// ScanOptions overlays the config on top of DefaultScanOptions.
func (c ProjectConfig) ScanOptions(root string) (ScanOptions, error) {
	if err := c.Validate(); err != nil {
		return ScanOptions{}, err
	}
	opts := DefaultScanOptions()
	opts.Root = root
	opts.Include = c.Include
	opts.Exclude = c.Exclude
	if c.MinSeverity != "" {
		opts.MinSeverity, _ = ParseSeverity(c.MinSeverity)
	}

	toggles := []struct {
		src *bool
		dst *bool
	}{
		{c.Checks.MagicLiterals, &opts.CheckMagicLiterals},
		{c.Checks.BooleanTraps, &opts.CheckBooleanTraps},
		{c.Checks.AmbiguousNames, &opts.CheckAmbiguousNames},
		{c.Checks.UndocumentedExports, &opts.CheckUndocumentedExports},
		{c.Checks.ImplicitSideEffects, &opts.CheckImplicitSideEffects},
		{c.Checks.DeepCallbacks, &opts.CheckDeepCallbacks},
		{c.Checks.DeadCode, &opts.CheckDeadCode},
	}
	for _, t := range toggles {
		if t.src != nil {
			*t.dst = *t.src
		}
	}

	if c.SimilarityThreshold != nil {
		opts.SimilarityThreshold = *c.SimilarityThreshold
	}
	if c.ClusterMinSize != nil {
		opts.ClusterMinSize = *c.ClusterMinSize
	}
	if c.CallbackDepth != nil {
		opts.CallbackDepthThreshold = *c.CallbackDepth
	}
	if c.Concurrency != nil {
		opts.Concurrency = *c.Concurrency
	}
	return opts, nil
}
