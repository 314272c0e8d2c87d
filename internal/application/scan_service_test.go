package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiready/aiready/internal/application"
	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
)

// fakeParser returns canned parse results keyed by file path. Sources
// containing "syntax error" are rejected.
type fakeParser struct {
	files   map[string]*domain.ParsedFile
	onParse func(ctx context.Context)
}

func (p *fakeParser) Language() domain.Language { return domain.LanguagePython }
func (p *fakeParser) Extensions() []string      { return []string{".py"} }

func (p *fakeParser) Parse(ctx context.Context, src []byte, path string) (*domain.ParsedFile, error) {
	if p.onParse != nil {
		p.onParse(ctx)
	}
	if strings.Contains(string(src), "syntax error") {
		return nil, errors.New("unexpected token")
	}
	pf, ok := p.files[path]
	if !ok {
		return &domain.ParsedFile{Path: path}, nil
	}
	cp := *pf
	return &cp, nil
}

type fakeRegistry struct{ parser *fakeParser }

func (r fakeRegistry) Lookup(path string) (domain.SourceParser, bool) {
	if filepath.Ext(path) == ".py" {
		return r.parser, true
	}
	return nil, false
}

func (r fakeRegistry) Extensions() []string { return []string{".py"} }

type fakeReader map[string]string

func (r fakeReader) ReadFile(path string) ([]byte, error) {
	src, ok := r[filepath.ToSlash(path)]
	if !ok {
		return nil, errors.New("permission denied")
	}
	return []byte(src), nil
}

func demoFiles() map[string]*domain.ParsedFile {
	return map[string]*domain.ParsedFile{
		"users.py": {
			Language:     domain.LanguagePython,
			TotalSymbols: 4,
			Exports: []domain.Export{
				{Name: "get_user", Kind: domain.KindFunction, Line: 1, EndLine: 3, Doc: "Gets.", Params: []domain.Param{{Name: "user_id"}}},
				{Name: "fetch_user", Kind: domain.KindFunction, Line: 5, EndLine: 7, Params: []domain.Param{{Name: "user_id"}}},
				{Name: "load_user", Kind: domain.KindFunction, Line: 9, EndLine: 11, Doc: "Loads.", Params: []domain.Param{{Name: "user_id"}}},
				{Name: "myVar", Kind: domain.KindVariable, Line: 13, EndLine: 13},
			},
		},
		"orders.py": {
			Language:     domain.LanguagePython,
			TotalSymbols: 2,
			Exports: []domain.Export{
				{Name: "cancel_order", Kind: domain.KindFunction, Line: 1, EndLine: 6, Doc: "Cancels.",
					Params:   []domain.Param{{Name: "order_id"}, {Name: "notify", Type: "bool"}},
					Literals: []domain.Literal{{Value: `"cancelled"`, Kind: domain.LiteralString, Line: 4}}},
				{Name: "read_user", Kind: domain.KindFunction, Line: 8, EndLine: 9, Doc: "Reads.",
					CallbackDepth: 5},
			},
		},
		"empty.py": {Language: domain.LanguagePython},
	}
}

func demoReader() fakeReader {
	return fakeReader{
		"proj/users.py":  "def get_user(user_id): ...",
		"proj/orders.py": "def cancel_order(order_id, notify): ...",
		"proj/empty.py":  "",
		"proj/broken.py": "syntax error here",
	}
}

func newScanService(t *testing.T) (*application.ScanService, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	svc := application.NewScanService(
		fakeRegistry{parser: &fakeParser{files: demoFiles()}},
		demoReader(),
		naming.DefaultConventions(),
		logger,
	)
	return svc, hook
}

func scanOpts() domain.ScanOptions {
	opts := domain.DefaultScanOptions()
	opts.Root = "proj"
	return opts
}

func TestScanService_Run(t *testing.T) {
	svc, _ := newScanService(t)

	report, err := svc.Run(context.Background(), []string{"users.py", "orders.py", "empty.py"}, scanOpts())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Summary.FilesAnalyzed)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "users.py", report.Results[0].File)
	assert.Equal(t, "orders.py", report.Results[1].File)
	assert.Empty(t, report.Skipped)

	assert.Equal(t, 6, report.AggregateSignals[domain.SignalTotalSymbols])
	assert.Equal(t, 6, report.AggregateSignals[domain.SignalTotalExports])
	assert.Equal(t, 1, report.AggregateSignals[domain.SignalBooleanTraps])
	assert.Equal(t, 1, report.AggregateSignals[domain.SignalDeepCallbacks])

	var mix []domain.Issue
	for _, is := range report.Results[0].Issues {
		if is.Type == domain.IssueConventionMix {
			mix = append(mix, is)
		}
	}
	require.Len(t, mix, 1)
	assert.Equal(t, "myVar", mix[0].Identifier)
	assert.Contains(t, mix[0].Suggestion, "my_var")

	// get_user, fetch_user, load_user, read_user share the base "user".
	require.Len(t, report.Duplicates.Clusters, 1)
	assert.Equal(t, "user", report.Duplicates.Clusters[0].BaseName)
	assert.Len(t, report.Duplicates.Clusters[0].Members, 4)
	assert.Equal(t, 5, report.Duplicates.Patterns)

	// fetch_user and myVar lack docs; every other category has one finding.
	assert.Equal(t, domain.SignalUndocumentedExports, report.Summary.TopRisk)
	assert.Equal(t, 1, report.Summary.Critical)
	assert.NotEmpty(t, report.Recommendations)
	assert.NotEqual(t, domain.RatingMinimal, report.Summary.Rating)
}

func TestScanService_SkipsAreRecordedAndLogged(t *testing.T) {
	svc, hook := newScanService(t)

	report, err := svc.Run(context.Background(), []string{"users.py", "notes.txt", "missing.py", "broken.py"}, scanOpts())
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.FilesAnalyzed)
	require.Len(t, report.Skipped, 3)
	assert.Equal(t, "notes.txt", report.Skipped[0].File)
	assert.Equal(t, domain.SkipUnsupported, report.Skipped[0].Reason)
	assert.Equal(t, domain.SkipUnreadable, report.Skipped[1].Reason)
	assert.Equal(t, domain.SkipParseError, report.Skipped[2].Reason)
	assert.Contains(t, report.Skipped[2].Error, domain.ErrParseFailure.Error())

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	assert.Equal(t, 3, warnings)
}

func TestScanService_InvalidOptionsFailBeforeReading(t *testing.T) {
	reads := 0
	reader := countingReader{fakeReader: demoReader(), reads: &reads}
	svc := application.NewScanService(fakeRegistry{parser: &fakeParser{}}, reader, naming.DefaultConventions(), nil)

	opts := scanOpts()
	opts.MinSeverity = "urgent"
	_, err := svc.Run(context.Background(), []string{"users.py"}, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	opts = scanOpts()
	opts.Include = []string{"src/**"}
	opts.Exclude = []string{"src/**"}
	_, err = svc.Run(context.Background(), []string{"users.py"}, opts)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
	assert.Equal(t, 0, reads)
}

type countingReader struct {
	fakeReader
	reads *int
}

func (r countingReader) ReadFile(path string) ([]byte, error) {
	*r.reads++
	return r.fakeReader.ReadFile(path)
}

func TestScanService_SeverityFilterKeepsSummary(t *testing.T) {
	svc, _ := newScanService(t)
	files := []string{"users.py", "orders.py", "empty.py"}

	var baseline *domain.Report
	for _, sev := range domain.Severities {
		opts := scanOpts()
		opts.MinSeverity = sev
		report, err := svc.Run(context.Background(), files, opts)
		require.NoError(t, err)

		if baseline == nil {
			baseline = report
			continue
		}
		assert.Equal(t, baseline.Summary, report.Summary, sev)
		assert.Equal(t, baseline.AggregateSignals, report.AggregateSignals, sev)
		for i, r := range report.Results {
			assert.LessOrEqual(t, len(r.Issues), len(baseline.Results[i].Issues))
			for _, is := range r.Issues {
				assert.True(t, is.Severity.AtLeast(sev))
			}
		}
	}
}

func TestScanService_MergeOrderIndependent(t *testing.T) {
	svc, _ := newScanService(t)
	ctx := context.Background()
	all := []string{"users.py", "orders.py", "empty.py"}

	whole, err := svc.Run(ctx, all, scanOpts())
	require.NoError(t, err)

	first, err := svc.Run(ctx, all[:1], scanOpts())
	require.NoError(t, err)
	rest, err := svc.Run(ctx, all[1:], scanOpts())
	require.NoError(t, err)

	merged := domain.NewSignals()
	merged.Merge(rest.AggregateSignals)
	merged.Merge(first.AggregateSignals)
	assert.Equal(t, whole.AggregateSignals, merged)

	reversed, err := svc.Run(ctx, []string{"empty.py", "orders.py", "users.py"}, scanOpts())
	require.NoError(t, err)
	assert.Equal(t, whole.AggregateSignals, reversed.AggregateSignals)
	assert.Equal(t, whole.Summary, reversed.Summary)
}

func TestScanService_ConcurrencyDoesNotChangeResults(t *testing.T) {
	svc, _ := newScanService(t)
	files := []string{"users.py", "orders.py", "empty.py"}

	serial := scanOpts()
	serial.Concurrency = 1
	a, err := svc.Run(context.Background(), files, serial)
	require.NoError(t, err)

	parallel := scanOpts()
	parallel.Concurrency = 8
	b, err := svc.Run(context.Background(), files, parallel)
	require.NoError(t, err)

	assert.Equal(t, a.Summary, b.Summary)
	assert.Equal(t, a.Results, b.Results)
}

func TestScanService_Progress(t *testing.T) {
	svc, _ := newScanService(t)

	var (
		mu     sync.Mutex
		events []domain.Progress
	)
	opts := scanOpts()
	opts.Progress = func(p domain.Progress) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, p)
	}

	_, err := svc.Run(context.Background(), []string{"users.py", "orders.py", "notes.txt"}, opts)
	require.NoError(t, err)

	require.Len(t, events, 4)
	for i, e := range events[:3] {
		assert.Equal(t, domain.PhaseAnalyze, e.Phase)
		assert.Equal(t, i+1, e.Processed)
		assert.Equal(t, 3, e.Total)
	}
	assert.Equal(t, domain.PhaseDuplicates, events[3].Phase)
}

func TestScanService_EmptyFileList(t *testing.T) {
	svc, _ := newScanService(t)

	report, err := svc.Run(context.Background(), nil, scanOpts())
	require.NoError(t, err)
	assert.Equal(t, domain.RatingMinimal, report.Summary.Rating)
	assert.Equal(t, 0, report.Summary.TotalSignals)
	assert.Equal(t, domain.TopRiskNone, report.Summary.TopRisk)
	assert.NotNil(t, report.Results)
	assert.NotNil(t, report.Recommendations)
}

func TestScanService_Cancelled(t *testing.T) {
	svc, _ := newScanService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Run(ctx, []string{"users.py"}, scanOpts())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanService_CancelDoesNotInterruptFile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var parsed []error
	fp := &fakeParser{onParse: func(pctx context.Context) {
		cancel()
		parsed = append(parsed, pctx.Err())
	}}
	reader := fakeReader{"proj/a.py": "", "proj/b.py": ""}
	svc := application.NewScanService(fakeRegistry{parser: fp}, reader, naming.DefaultConventions(), nil)

	opts := scanOpts()
	opts.Concurrency = 1
	_, err := svc.Run(ctx, []string{"a.py", "b.py"}, opts)
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, parsed, 1)
	assert.NoError(t, parsed[0])
}

func TestScanService_ZeroOptionsRunNoDetectors(t *testing.T) {
	svc, _ := newScanService(t)

	report, err := svc.Run(context.Background(), []string{"users.py", "orders.py"}, domain.ScanOptions{Root: "proj"})
	require.NoError(t, err)
	for _, key := range domain.RiskCategories {
		assert.Zero(t, report.AggregateSignals[key], key)
	}
	assert.Positive(t, report.AggregateSignals[domain.SignalTotalSymbols])
	assert.Equal(t, domain.SeverityInfo, report.MinSeverity)
}
