package application

import (
	"context"
	"fmt"

	"github.com/aiready/aiready/internal/domain"
)

// Overrides are command-line values layered on top of .aiready.yaml.
type Overrides struct {
	Include     []string
	Exclude     []string
	MinSeverity string
	Progress    domain.ProgressFunc
}

// ProjectService scans a project directory: load config → enumerate → scan
// → attach commit hash.
type ProjectService struct {
	enumerator   domain.FileEnumerator
	configLoader domain.ConfigLoader
	scan         *ScanService
	git          domain.GitInfo
}

func NewProjectService(
	enumerator domain.FileEnumerator,
	configLoader domain.ConfigLoader,
	scan *ScanService,
	git domain.GitInfo,
) *ProjectService {
	return &ProjectService{
		enumerator:   enumerator,
		configLoader: configLoader,
		scan:         scan,
		git:          git,
	}
}

// Options resolves the effective scan options for projectPath.
func (p *ProjectService) Options(projectPath string, ov Overrides) (domain.ScanOptions, error) {
	cfg, err := p.configLoader.Load(projectPath)
	if err != nil {
		return domain.ScanOptions{}, fmt.Errorf("loading config: %w", err)
	}
	if len(ov.Include) > 0 {
		cfg.Include = ov.Include
	}
	if len(ov.Exclude) > 0 {
		cfg.Exclude = ov.Exclude
	}
	if ov.MinSeverity != "" {
		cfg.MinSeverity = ov.MinSeverity
	}
	opts, err := cfg.ScanOptions(projectPath)
	if err != nil {
		return domain.ScanOptions{}, err
	}
	opts.Progress = ov.Progress
	return opts, nil
}

// ScanProject scans every supported file below projectPath.
func (p *ProjectService) ScanProject(ctx context.Context, projectPath string, ov Overrides) (*domain.Report, error) {
	opts, err := p.Options(projectPath, ov)
	if err != nil {
		return nil, err
	}
	files, err := p.enumerator.Enumerate(projectPath, opts.Include, opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("enumerating files: %w", err)
	}
	return p.run(ctx, projectPath, files, opts)
}

// ScanFiles scans the given project-relative files with the project's
// configuration. Include and exclude filters are not applied.
func (p *ProjectService) ScanFiles(ctx context.Context, projectPath string, files []string, ov Overrides) (*domain.Report, error) {
	opts, err := p.Options(projectPath, ov)
	if err != nil {
		return nil, err
	}
	return p.run(ctx, projectPath, files, opts)
}

func (p *ProjectService) run(ctx context.Context, projectPath string, files []string, opts domain.ScanOptions) (*domain.Report, error) {
	report, err := p.scan.Run(ctx, files, opts)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	if p.git != nil {
		if hash, err := p.git.CommitHash(projectPath); err == nil {
			report.CommitHash = hash
		}
	}
	return report, nil
}
