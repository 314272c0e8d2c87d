package application

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
	"github.com/aiready/aiready/internal/domain/patterns"
	"github.com/aiready/aiready/internal/domain/scoring"
	"github.com/aiready/aiready/internal/domain/signals"
)

// ScanService runs the analysis pipeline over a list of files:
// parse → extract patterns → check names → scan signals → merge → score.
type ScanService struct {
	registry domain.ParserRegistry
	reader   domain.SourceReader
	checker  *naming.Checker
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewScanService(
	registry domain.ParserRegistry,
	reader domain.SourceReader,
	conventions naming.Conventions,
	log logrus.FieldLogger,
) *ScanService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ScanService{
		registry: registry,
		reader:   reader,
		checker:  naming.NewChecker(conventions),
		log:      log,
		now:      time.Now,
	}
}

// fileOutcome is what one worker produces. Exactly one of result and skip
// is set.
type fileOutcome struct {
	result   *domain.FileResult
	patterns []domain.StructuralPattern
	skip     *domain.SkippedFile
}

// Run analyzes files, which are paths relative to opts.Root. Options are
// validated before any file is read. Unsupported, unreadable and
// unparseable files are recorded in Report.Skipped and never fail the scan.
// Build opts from domain.DefaultScanOptions; detectors left false stay off.
func (s *ScanService) Run(ctx context.Context, files []string, opts domain.ScanOptions) (*domain.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = withDefaults(opts)
	scanner := signals.NewScanner(signals.OptionsFrom(opts))

	total := len(files)
	outcomes := make([]fileOutcome, total)
	agg := domain.NewSignals()

	var (
		mu        sync.Mutex
		processed int
	)
	workers := opts.Concurrency
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := s.analyzeFile(gctx, file, opts, scanner)
			outcomes[i] = out

			mu.Lock()
			defer mu.Unlock()
			if out.result != nil {
				agg.Merge(out.result.Signals)
			}
			processed++
			report(opts.Progress, domain.Progress{Processed: processed, Total: total, Phase: domain.PhaseAnalyze})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan interrupted: %w", err)
	}

	rep := &domain.Report{
		AggregateSignals: agg,
		MinSeverity:      opts.MinSeverity,
		Timestamp:        s.now(),
		Recommendations:  []domain.Recommendation{},
	}
	results := make([]domain.FileResult, 0, total)
	var all []domain.StructuralPattern
	for _, o := range outcomes {
		switch {
		case o.skip != nil:
			rep.Skipped = append(rep.Skipped, *o.skip)
		case o.result != nil:
			results = append(results, *o.result)
			all = append(all, o.patterns...)
		}
	}

	rep.Duplicates = domain.Duplicates{
		Patterns: len(all),
		Clusters: patterns.Cluster(all, opts.ClusterMinSize),
		Pairs:    patterns.FindNearDuplicates(all, opts.SimilarityThreshold),
	}
	report(opts.Progress, domain.Progress{Processed: 1, Total: 1, Phase: domain.PhaseDuplicates})

	// Totals come from the unfiltered results; filtering happens last.
	rep.Summary = scoring.Summarize(results, agg)
	if recs := scoring.Recommend(results, agg, rep.Duplicates); len(recs) > 0 {
		rep.Recommendations = recs
	}
	rep.Results = scoring.FilterIssues(results, opts.MinSeverity)

	s.log.WithFields(logrus.Fields{
		"files":   rep.Summary.FilesAnalyzed,
		"skipped": len(rep.Skipped),
		"signals": rep.Summary.TotalSignals,
		"rating":  rep.Summary.Rating,
	}).Debug("scan complete")
	return rep, nil
}

func (s *ScanService) analyzeFile(ctx context.Context, file string, opts domain.ScanOptions, scanner *signals.Scanner) fileOutcome {
	parser, ok := s.registry.Lookup(file)
	if !ok {
		return s.skip(file, domain.SkipUnsupported, fmt.Errorf("%w: %s", domain.ErrUnsupportedLanguage, filepath.Ext(file)))
	}

	src, err := s.reader.ReadFile(filepath.Join(opts.Root, file))
	if err != nil {
		return s.skip(file, domain.SkipUnreadable, fmt.Errorf("%w: %v", domain.ErrUnreadableFile, err))
	}

	// Cancellation is honoured between files only.
	pf, err := parser.Parse(context.WithoutCancel(ctx), src, file)
	if err != nil {
		return s.skip(file, domain.SkipParseError, fmt.Errorf("%w: %v", domain.ErrParseFailure, err))
	}
	pf.Path = file
	if pf.Language == "" {
		pf.Language = parser.Language()
	}

	issues := s.namingIssues(pf)
	found, sig := scanner.Scan(pf)
	issues = append(issues, found...)
	sortIssues(issues)

	return fileOutcome{
		result: &domain.FileResult{
			File:     file,
			Language: pf.Language,
			Issues:   issues,
			Signals:  sig,
		},
		patterns: patterns.Extract(pf),
	}
}

// namingIssues checks every exported symbol and every imported binding.
func (s *ScanService) namingIssues(pf *domain.ParsedFile) []domain.Issue {
	issues := make([]domain.Issue, 0)
	for _, e := range pf.Exports {
		if ni, ok := s.checker.Check(pf.Language, e.Name, e.Kind, pf.Path, e.Line, e.Column); ok {
			issues = append(issues, ni.ToIssue())
		}
	}
	for _, imp := range pf.Imports {
		for _, name := range imp.Names {
			if ni, ok := s.checker.Check(pf.Language, name, domain.KindVariable, pf.Path, imp.Line, 0); ok {
				issues = append(issues, ni.ToIssue())
			}
		}
	}
	return issues
}

func (s *ScanService) skip(file, reason string, err error) fileOutcome {
	s.log.WithFields(logrus.Fields{"file": file, "reason": reason}).Warnf("skipping file: %v", err)
	return fileOutcome{skip: &domain.SkippedFile{File: file, Reason: reason, Error: err.Error()}}
}

func report(fn domain.ProgressFunc, p domain.Progress) {
	if fn != nil {
		fn(p)
	}
}

// withDefaults fills zero tuning values left by callers that build
// ScanOptions by hand.
func withDefaults(opts domain.ScanOptions) domain.ScanOptions {
	if opts.MinSeverity == "" {
		opts.MinSeverity = domain.SeverityInfo
	}
	if opts.SimilarityThreshold == 0 {
		opts.SimilarityThreshold = domain.DefaultSimilarityThreshold
	}
	if opts.ClusterMinSize == 0 {
		opts.ClusterMinSize = domain.DefaultClusterMinSize
	}
	if opts.CallbackDepthThreshold == 0 {
		opts.CallbackDepthThreshold = domain.DefaultCallbackDepth
	}
	return opts
}

func sortIssues(issues []domain.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Type < b.Type
	})
}
