package signals_test

import (
	"testing"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/signals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allOn() signals.Options {
	return signals.OptionsFrom(domain.DefaultScanOptions())
}

func byType(issues []domain.Issue, typ string) []domain.Issue {
	var out []domain.Issue
	for _, is := range issues {
		if is.Type == typ {
			out = append(out, is)
		}
	}
	return out
}

func documented(e domain.Export) domain.Export {
	e.Doc = "Does a thing."
	return e
}

func TestScan_EmptyFileStillReportsTotals(t *testing.T) {
	issues, sig := signals.NewScanner(allOn()).Scan(&domain.ParsedFile{Path: "empty.py", TotalSymbols: 3})
	assert.Empty(t, issues)
	assert.Equal(t, 3, sig[domain.SignalTotalSymbols])
	assert.Equal(t, 0, sig[domain.SignalTotalExports])
	assert.Contains(t, sig, domain.SignalMagicLiterals)
}

func TestScan_NilFile(t *testing.T) {
	issues, sig := signals.NewScanner(allOn()).Scan(nil)
	assert.Nil(t, issues)
	assert.Equal(t, 0, sig[domain.SignalTotalSymbols])
}

func TestScan_CountersMatchIssues(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "svc.py",
		Exports: []domain.Export{
			{Name: "calculate_tax", Kind: domain.KindFunction, Line: 3,
				Params:   []domain.Param{{Name: "amount"}, {Name: "tax_rate", Default: "0.08"}},
				Literals: []domain.Literal{{Value: "0.08", Kind: domain.LiteralNumber, Line: 3}, {Value: "1", Kind: domain.LiteralNumber, Line: 4}}},
			{Name: "render", Kind: domain.KindFunction, Line: 10, Doc: "Renders.",
				Params: []domain.Param{{Name: "pretty", Type: "bool"}, {Name: "strict", Default: "False"}}},
		},
	}
	issues, sig := signals.NewScanner(allOn()).Scan(pf)

	assert.Equal(t, 1, sig[domain.SignalMagicLiterals])
	assert.Equal(t, 1, sig[domain.SignalBooleanTraps])
	assert.Equal(t, 1, sig[domain.SignalUndocumentedExports])
	assert.Equal(t, 2, sig[domain.SignalTotalExports])

	traps := byType(issues, domain.IssueBooleanTrap)
	require.Len(t, traps, 1)
	assert.Equal(t, domain.SeverityMajor, traps[0].Severity)
	assert.Equal(t, "render", traps[0].Identifier)

	magic := byType(issues, domain.IssueMagicLiteral)
	require.Len(t, magic, 1)
	assert.Equal(t, "0.08", magic[0].Snippet)
	assert.Equal(t, domain.SeverityMinor, magic[0].Severity)
}

func TestScan_TogglesDisableDetectors(t *testing.T) {
	pf := &domain.ParsedFile{
		Path:    "a.js",
		Exports: []domain.Export{{Name: "run", Kind: domain.KindFunction, Line: 1}},
	}
	issues, sig := signals.NewScanner(signals.Options{}).Scan(pf)
	assert.Empty(t, issues)
	assert.Equal(t, 0, sig[domain.SignalUndocumentedExports])
	assert.Equal(t, 1, sig[domain.SignalTotalExports])
}

func TestMagicLiterals(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "orders.py",
		Exports: []domain.Export{
			documented(domain.Export{Name: "cancel_order", Kind: domain.KindFunction, Line: 1, Literals: []domain.Literal{
				{Value: `"cancelled"`, Kind: domain.LiteralString, Line: 5},
				{Value: `"Amount must be positive"`, Kind: domain.LiteralString, Line: 6},
				{Value: "0", Kind: domain.LiteralNumber, Line: 7},
				{Value: "-1", Kind: domain.LiteralNumber, Line: 7},
				{Value: "0x40", Kind: domain.LiteralNumber, Line: 8},
			}}),
			{Name: "MAX_ORDERS", Kind: domain.KindConst, Line: 20, Literals: []domain.Literal{{Value: "100", Kind: domain.LiteralNumber, Line: 20}}},
		},
	}
	only := signals.Options{MagicLiterals: true}
	issues, sig := signals.NewScanner(only).Scan(pf)
	require.Len(t, issues, 2)
	assert.Equal(t, 2, sig[domain.SignalMagicLiterals])
	assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
	assert.Equal(t, `"cancelled"`, issues[0].Snippet)
	assert.Equal(t, domain.SeverityMinor, issues[1].Severity)
	assert.Equal(t, "0x40", issues[1].Snippet)
}

func TestBooleanTraps_KeywordOnlyIgnored(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "a.py",
		Exports: []domain.Export{
			{Name: "send", Kind: domain.KindFunction, Line: 1, Params: []domain.Param{{Name: "force", Type: "bool", KeywordOnly: true}}},
			{Name: "save", Kind: domain.KindFunction, Line: 5, Params: []domain.Param{{Name: "overwrite", Type: "bool"}}},
		},
	}
	issues, _ := signals.NewScanner(signals.Options{BooleanTraps: true}).Scan(pf)
	require.Len(t, issues, 1)
	assert.Equal(t, "save", issues[0].Identifier)
	assert.Equal(t, domain.SeverityMinor, issues[0].Severity)
}

func TestAmbiguousNames(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "users.py",
		Exports: []domain.Export{
			{Name: "get_user", Kind: domain.KindFunction, Line: 1},
			{Name: "fetch_user", Kind: domain.KindFunction, Line: 5},
			{Name: "process_data", Kind: domain.KindFunction, Line: 9},
			{Name: "render", Kind: domain.KindFunction, Line: 12},
			{Name: "render", Kind: domain.KindFunction, Line: 15},
		},
	}
	issues, sig := signals.NewScanner(signals.Options{AmbiguousNames: true}).Scan(pf)
	require.Len(t, issues, 3)
	assert.Equal(t, 3, sig[domain.SignalAmbiguousNames])
	assert.Equal(t, 1, sig[domain.SignalOverloadedSymbols])

	assert.Equal(t, "render", issues[0].Identifier)
	assert.Equal(t, 15, issues[0].Line)
	assert.Equal(t, domain.SeverityMajor, issues[0].Severity)

	assert.Equal(t, "fetch_user, get_user", issues[1].Identifier)
	assert.Equal(t, domain.SeverityMajor, issues[1].Severity)

	assert.Equal(t, "process_data", issues[2].Identifier)
	assert.Equal(t, domain.SeverityMinor, issues[2].Severity)
}

func TestAmbiguousNames_MethodsQualified(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "store.go",
		Exports: []domain.Export{
			{Name: "Close", Kind: domain.KindFunction, Receiver: "*Reader", Line: 1},
			{Name: "Close", Kind: domain.KindFunction, Receiver: "*Writer", Line: 5},
		},
	}
	issues, sig := signals.NewScanner(signals.Options{AmbiguousNames: true}).Scan(pf)
	assert.Empty(t, issues)
	assert.Equal(t, 0, sig[domain.SignalOverloadedSymbols])
}

func TestUndocumentedExports(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "a.ts",
		Exports: []domain.Export{
			{Name: "Client", Kind: domain.KindClass, Line: 1},
			{Name: "TIMEOUT", Kind: domain.KindConst, Line: 2},
			{Name: "connect", Kind: domain.KindFunction, Line: 3, Doc: "/** Opens a connection. */"},
		},
	}
	issues, _ := signals.NewScanner(signals.Options{UndocumentedExports: true}).Scan(pf)
	require.Len(t, issues, 2)
	assert.Equal(t, domain.SeverityMinor, issues[0].Severity)
	assert.Equal(t, domain.SeverityInfo, issues[1].Severity)
}

func TestImplicitSideEffects(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "svc.go",
		Exports: []domain.Export{
			{Name: "GetConfig", Kind: domain.KindFunction, Line: 1,
				Effects: []domain.Effect{{Kind: domain.EffectIO, Target: "os.WriteFile", Line: 3}}},
			{Name: "Render", Kind: domain.KindFunction, Line: 10,
				Effects: []domain.Effect{
					{Kind: domain.EffectIO, Target: "fmt.Println", Line: 11},
					{Kind: domain.EffectGlobalWrite, Target: "cache", Line: 12},
				}},
			{Name: "SetLevel", Kind: domain.KindFunction, Line: 20,
				Effects: []domain.Effect{{Kind: domain.EffectGlobalWrite, Target: "level", Line: 21}}},
			{Name: "Print", Kind: domain.KindFunction, Line: 30,
				Effects: []domain.Effect{{Kind: domain.EffectIO, Target: "fmt.Println", Line: 31}}},
		},
	}
	issues, sig := signals.NewScanner(signals.Options{ImplicitSideEffects: true}).Scan(pf)
	require.Len(t, issues, 2)
	assert.Equal(t, 2, sig[domain.SignalImplicitSideEffects])

	assert.Equal(t, "GetConfig", issues[0].Identifier)
	assert.Equal(t, domain.SeverityMajor, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Line)

	assert.Equal(t, "Render", issues[1].Identifier)
	assert.Equal(t, domain.SeverityMinor, issues[1].Severity)
	assert.Equal(t, "cache", issues[1].Snippet)
}

func TestImplicitSideEffects_VoidVersusValue(t *testing.T) {
	scan := func(kind domain.EffectKind, hasResult bool) []domain.Issue {
		pf := &domain.ParsedFile{
			Path: "cart.py",
			Exports: []domain.Export{
				{Name: "total_price", Kind: domain.KindFunction, Line: 1, HasResult: hasResult,
					Effects: []domain.Effect{{Kind: kind, Target: "print", Line: 2}}},
			},
		}
		issues, _ := signals.NewScanner(signals.Options{ImplicitSideEffects: true}).Scan(pf)
		return issues
	}

	assert.Empty(t, scan(domain.EffectIO, false))
	io := scan(domain.EffectIO, true)
	require.Len(t, io, 1)
	assert.Equal(t, domain.SeverityMinor, io[0].Severity)
	assert.Contains(t, io[0].Message, "returns a value")

	assert.Len(t, scan(domain.EffectGlobalWrite, false), 1)
	assert.Len(t, scan(domain.EffectGlobalWrite, true), 1)
}

func TestDeepCallbacks(t *testing.T) {
	pf := &domain.ParsedFile{
		Path: "a.js",
		Exports: []domain.Export{
			{Name: "a", Kind: domain.KindFunction, Line: 1, CallbackDepth: 2},
			{Name: "b", Kind: domain.KindFunction, Line: 2, CallbackDepth: 3},
			{Name: "c", Kind: domain.KindFunction, Line: 3, CallbackDepth: 4},
		},
	}
	issues, sig := signals.NewScanner(signals.Options{DeepCallbacks: true, CallbackDepthThreshold: 2}).Scan(pf)
	require.Len(t, issues, 2)
	assert.Equal(t, 2, sig[domain.SignalDeepCallbacks])
	assert.Equal(t, domain.SeverityMajor, issues[0].Severity)
	assert.Equal(t, domain.SeverityCritical, issues[1].Severity)
}

func TestDeadCode(t *testing.T) {
	pf := &domain.ParsedFile{
		Path:         "a.py",
		Unreferenced: []domain.Symbol{{Name: "_unused", Line: 4}},
	}
	issues, sig := signals.NewScanner(signals.Options{DeadCode: true}).Scan(pf)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueDeadCode, issues[0].Type)
	assert.Equal(t, domain.SeverityInfo, issues[0].Severity)
	assert.Equal(t, 1, sig[domain.SignalDeadCode])
}
