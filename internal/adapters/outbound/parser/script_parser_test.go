package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiready/aiready/internal/adapters/outbound/parser"
	"github.com/aiready/aiready/internal/domain"
)

func TestScriptParser_JavaScriptExports(t *testing.T) {
	pf := parseFixture(t, parser.NewJavaScriptParser(), "api.js")

	assert.Equal(t, domain.LanguageJavaScript, pf.Language)
	assert.Equal(t, 7, pf.TotalSymbols)

	names := make([]string, len(pf.Exports))
	for i, e := range pf.Exports {
		names[i] = e.Name
	}
	assert.Equal(t, []string{"loadProfile", "fetch_orders", "MAX_PAGE_SIZE", "userCache", "subscribe"}, names)

	assert.Equal(t, domain.KindConst, exportNamed(t, pf, "MAX_PAGE_SIZE").Kind)
	assert.Equal(t, domain.KindClass, exportNamed(t, pf, "userCache").Kind)
	assert.Equal(t, "Loads a user profile.", exportNamed(t, pf, "loadProfile").Doc)
	assert.Empty(t, exportNamed(t, pf, "fetch_orders").Doc)
}

func TestScriptParser_JavaScriptImports(t *testing.T) {
	pf := parseFixture(t, parser.NewJavaScriptParser(), "api.js")

	assert.Equal(t, []domain.Import{
		{Source: "./legacy", Names: []string{"get_user"}, Line: 1},
		{Source: "axios", Names: []string{"axios"}, Line: 2},
	}, pf.Imports)

	load := exportNamed(t, pf, "loadProfile")
	assert.Equal(t, []string{"axios"}, load.Imports)
	assert.Equal(t, []string{"axios.get"}, load.Dependencies)
}

func TestScriptParser_ParamsAndEffects(t *testing.T) {
	pf := parseFixture(t, parser.NewJavaScriptParser(), "api.js")

	load := exportNamed(t, pf, "loadProfile")
	assert.Equal(t, []domain.Param{{Name: "id"}, {Name: "includeAvatar", Default: "false"}}, load.Params)
	assert.True(t, load.HasResult)
	require.Len(t, load.Effects, 1)
	assert.Equal(t, domain.Effect{Kind: domain.EffectIO, Target: "axios.get", Line: 8}, load.Effects[0])

	var targets []string
	for _, eff := range exportNamed(t, pf, "fetch_orders").Effects {
		targets = append(targets, eff.Target)
	}
	assert.Equal(t, []string{"console.log", "fetch"}, targets)
}

func TestScriptParser_CallbacksLiteralsAndDeadCode(t *testing.T) {
	pf := parseFixture(t, parser.NewJavaScriptParser(), "api.js")

	sub := exportNamed(t, pf, "subscribe")
	assert.Equal(t, 3, sub.CallbackDepth)
	assert.Empty(t, sub.Effects)

	var values []string
	for _, lit := range sub.Literals {
		values = append(values, lit.Value)
	}
	assert.Equal(t, []string{`"ready"`, `"done"`, "1337", "10"}, values)

	assert.Equal(t, 1, exportNamed(t, pf, "loadProfile").CallbackDepth)
	assert.Equal(t, []domain.Symbol{{Name: "neverCalled", Line: 36}}, pf.Unreferenced)
}

func TestScriptParser_TypeScript(t *testing.T) {
	pf := parseFixture(t, parser.NewTypeScriptParser(), "service.ts")

	assert.Equal(t, domain.LanguageTypeScript, pf.Language)
	assert.Equal(t, 6, pf.TotalSymbols)

	assert.Equal(t, domain.KindInterface, exportNamed(t, pf, "UserRepository").Kind)
	assert.Equal(t, domain.KindType, exportNamed(t, pf, "UserId").Kind)
	assert.Equal(t, domain.KindVariable, exportNamed(t, pf, "retry_limit").Kind)

	user := exportNamed(t, pf, "User")
	assert.Equal(t, domain.KindClass, user.Kind)
	assert.Equal(t, "A user record.", user.Doc)

	format := exportNamed(t, pf, "formatUser")
	assert.Equal(t, []domain.Param{
		{Name: "user", Type: "User"},
		{Name: "uppercase", Type: "boolean"},
	}, format.Params)
	assert.Equal(t, []domain.Effect{
		{Kind: domain.EffectGlobalWrite, Target: "document.title", Line: 13},
	}, format.Effects)
}

func TestScriptParser_TSXGrammar(t *testing.T) {
	src := []byte("export function Badge(props: { label: string }) {\n  return <span>{props.label}</span>;\n}\n")
	pf, err := parser.NewTypeScriptParser().Parse(context.Background(), src, "badge.tsx")
	require.NoError(t, err)
	require.Len(t, pf.Exports, 1)
	assert.Equal(t, "Badge", pf.Exports[0].Name)
}

func TestScriptParser_SyntaxError(t *testing.T) {
	_, err := parser.NewJavaScriptParser().Parse(context.Background(), []byte("export function (\n"), "bad.js")
	require.Error(t, err)
}

func TestScriptParser_RepeatedSyntaxErrors(t *testing.T) {
	for _, p := range []domain.SourceParser{parser.NewJavaScriptParser(), parser.NewTypeScriptParser()} {
		for i := 0; i < 1000; i++ {
			_, err := p.Parse(context.Background(), []byte("export function (\n"), "bad.ts")
			require.ErrorContains(t, err, "syntax error")
		}
	}
}
