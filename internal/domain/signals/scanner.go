// Package signals detects heuristic AI-collaboration risks in parsed files.
package signals

import (
	"github.com/aiready/aiready/internal/domain"
)

// Options toggles detectors.
type Options struct {
	MagicLiterals       bool
	BooleanTraps        bool
	AmbiguousNames      bool
	UndocumentedExports bool
	ImplicitSideEffects bool
	DeepCallbacks       bool
	DeadCode            bool

	CallbackDepthThreshold int
}

// OptionsFrom picks the detector settings out of scan options.
func OptionsFrom(o domain.ScanOptions) Options {
	return Options{
		MagicLiterals:          o.CheckMagicLiterals,
		BooleanTraps:           o.CheckBooleanTraps,
		AmbiguousNames:         o.CheckAmbiguousNames,
		UndocumentedExports:    o.CheckUndocumentedExports,
		ImplicitSideEffects:    o.CheckImplicitSideEffects,
		DeepCallbacks:          o.CheckDeepCallbacks,
		DeadCode:               o.CheckDeadCode,
		CallbackDepthThreshold: o.CallbackDepthThreshold,
	}
}

// detector owns exactly one counter in the signals map.
type detector struct {
	key string
	run func(pf *domain.ParsedFile, sig domain.Signals) []domain.Issue
}

// Scanner runs the enabled detectors over one file at a time. It holds no
// per-file state and is safe for concurrent use.
type Scanner struct {
	detectors []detector
}

// NewScanner builds a scanner with the detectors enabled in opts.
func NewScanner(opts Options) *Scanner {
	s := &Scanner{}
	add := func(on bool, key string, run func(*domain.ParsedFile, domain.Signals) []domain.Issue) {
		if on {
			s.detectors = append(s.detectors, detector{key: key, run: run})
		}
	}
	add(opts.MagicLiterals, domain.SignalMagicLiterals, detectMagicLiterals)
	add(opts.BooleanTraps, domain.SignalBooleanTraps, detectBooleanTraps)
	add(opts.AmbiguousNames, domain.SignalAmbiguousNames, detectAmbiguousNames)
	add(opts.UndocumentedExports, domain.SignalUndocumentedExports, detectUndocumented)
	add(opts.ImplicitSideEffects, domain.SignalImplicitSideEffects, detectSideEffects)
	depth := opts.CallbackDepthThreshold
	add(opts.DeepCallbacks, domain.SignalDeepCallbacks, func(pf *domain.ParsedFile, _ domain.Signals) []domain.Issue {
		return detectDeepCallbacks(pf, depth)
	})
	add(opts.DeadCode, domain.SignalDeadCode, detectDeadCode)
	return s
}

// Scan returns the file's issues and signal counts. totalSymbols and
// totalExports are always present.
func (s *Scanner) Scan(pf *domain.ParsedFile) ([]domain.Issue, domain.Signals) {
	sig := domain.NewSignals()
	if pf == nil {
		return nil, sig
	}
	sig[domain.SignalTotalExports] = len(pf.Exports)
	sig[domain.SignalTotalSymbols] = max(pf.TotalSymbols, len(pf.Exports))

	var issues []domain.Issue
	for _, d := range s.detectors {
		found := d.run(pf, sig)
		sig[d.key] += len(found)
		issues = append(issues, found...)
	}
	return issues, sig
}

func newIssue(pf *domain.ParsedFile, typ, category string, sev domain.Severity, line int) domain.Issue {
	return domain.Issue{
		Type:     typ,
		Category: category,
		Severity: sev,
		File:     pf.Path,
		Line:     line,
	}
}

func isCallable(e domain.Export) bool {
	return e.Kind == domain.KindFunction || e.Kind == domain.KindClass
}
