package parser

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
)

// ScriptParser implements domain.SourceParser for JavaScript and
// TypeScript with tree-sitter.
type ScriptParser struct {
	language   domain.Language
	extensions []string
	grammars   map[string]*sitter.Language
	fallback   *sitter.Language
}

func NewJavaScriptParser() *ScriptParser {
	return &ScriptParser{
		language:   domain.LanguageJavaScript,
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		fallback:   javascript.GetLanguage(),
	}
}

func NewTypeScriptParser() *ScriptParser {
	return &ScriptParser{
		language:   domain.LanguageTypeScript,
		extensions: []string{".ts", ".tsx", ".mts", ".cts"},
		grammars:   map[string]*sitter.Language{".tsx": tsx.GetLanguage()},
		fallback:   typescript.GetLanguage(),
	}
}

func (p *ScriptParser) Language() domain.Language { return p.language }
func (p *ScriptParser) Extensions() []string      { return p.extensions }

var (
	jsIORoots     = map[string]bool{"console": true, "document": true, "window": true, "localStorage": true, "sessionStorage": true, "navigator": true}
	jsIOCalls     = map[string]bool{"fetch": true, "alert": true, "prompt": true, "confirm": true}
	jsIOModules   = map[string]bool{"axios": true, "fs": true, "fs/promises": true, "node:fs": true, "http": true, "https": true, "child_process": true, "node-fetch": true}
	jsMutators    = map[string]bool{"push": true, "pop": true, "shift": true, "unshift": true, "splice": true, "sort": true, "reverse": true, "fill": true, "set": true, "delete": true, "clear": true, "add": true}
	jsFuncTypes   = map[string]bool{"arrow_function": true, "function_expression": true, "function": true}
	jsIdentifiers = map[string]bool{"identifier": true}
	jsRefTypes    = map[string]bool{"identifier": true, "type_identifier": true, "shorthand_property_identifier": true}
)

func (p *ScriptParser) Parse(ctx context.Context, src []byte, path string) (*domain.ParsedFile, error) {
	lang := p.fallback
	if g, ok := p.grammars[strings.ToLower(filepath.Ext(path))]; ok {
		lang = g
	}
	tree, err := parseTree(ctx, lang, src, path)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	f := &jsFile{
		src:      src,
		bindings: make(map[string]string),
		module:   make(map[string]bool),
	}
	result := &domain.ParsedFile{Path: path, Language: p.language}

	for _, n := range namedChildren(root) {
		switch n.Type() {
		case "import_statement":
			result.Imports = append(result.Imports, f.importEntry(n))
		case "lexical_declaration", "variable_declaration":
			for _, d := range declarators(n) {
				f.module[text(d.ChildByFieldName("name"), src)] = true
			}
		}
	}

	declared := make(map[uint32]bool)
	var private []domain.Symbol
	for _, n := range namedChildren(root) {
		decl, exported := n, false
		if n.Type() == "export_statement" {
			decl, exported = n.ChildByFieldName("declaration"), true
			if decl == nil {
				continue
			}
		}
		exports := f.declare(n, decl, &result.TotalSymbols)
		for _, e := range exports {
			if exported {
				result.Exports = append(result.Exports, e)
				continue
			}
			if e.Kind == domain.KindFunction {
				private = append(private, domain.Symbol{Name: e.Name, Line: e.Line})
			}
		}
		for _, name := range declNames(decl) {
			declared[name.StartByte()] = true
		}
	}

	if len(private) > 0 {
		used := referenced(root, src, jsIdentifiers, declared)
		for _, s := range private {
			if !used[s.Name] {
				result.Unreferenced = append(result.Unreferenced, s)
			}
		}
	}
	return result, nil
}

// jsFile carries per-file lookup tables.
type jsFile struct {
	src []byte
	// bindings maps an imported local name to its module specifier.
	bindings map[string]string
	// module holds names declared at module level.
	module map[string]bool
}

func (f *jsFile) importEntry(n *sitter.Node) domain.Import {
	source := strings.Trim(text(n.ChildByFieldName("source"), f.src), "'\"`")
	entry := domain.Import{Source: source, Line: line(n)}
	bind := func(name string) {
		entry.Names = append(entry.Names, name)
		f.bindings[name] = source
	}
	walk(n, func(c *sitter.Node) bool {
		switch c.Type() {
		case "import_specifier":
			name := c.ChildByFieldName("alias")
			if name == nil {
				name = c.ChildByFieldName("name")
			}
			bind(text(name, f.src))
			return false
		case "namespace_import":
			for _, id := range namedChildren(c) {
				bind(text(id, f.src))
			}
			return false
		case "import_clause":
			for _, id := range namedChildren(c) {
				if id.Type() == "identifier" {
					bind(text(id, f.src))
				}
			}
		}
		return true
	})
	return entry
}

// declare turns one top-level declaration into exports. outer is the
// node comments attach to.
func (f *jsFile) declare(outer, decl *sitter.Node, total *int) []domain.Export {
	doc := f.jsDoc(outer)
	switch decl.Type() {
	case "function_declaration", "generator_function_declaration":
		*total++
		if name := decl.ChildByFieldName("name"); name != nil {
			return []domain.Export{f.functionExport(decl, name, decl, doc)}
		}
	case "class_declaration", "abstract_class_declaration":
		*total++
		*total += countClassMembers(decl)
		if name := decl.ChildByFieldName("name"); name != nil {
			return []domain.Export{f.typeExport(decl, name, domain.KindClass, doc)}
		}
	case "interface_declaration":
		*total++
		return []domain.Export{f.typeExport(decl, decl.ChildByFieldName("name"), domain.KindInterface, doc)}
	case "type_alias_declaration", "enum_declaration":
		*total++
		return []domain.Export{f.typeExport(decl, decl.ChildByFieldName("name"), domain.KindType, doc)}
	case "lexical_declaration", "variable_declaration":
		var out []domain.Export
		for _, d := range declarators(decl) {
			*total++
			name := d.ChildByFieldName("name")
			if name == nil || name.Type() != "identifier" {
				continue
			}
			if value := d.ChildByFieldName("value"); value != nil && jsFuncTypes[value.Type()] {
				out = append(out, f.functionExport(decl, name, value, doc))
				continue
			}
			kind := domain.KindVariable
			if naming.IsAllUpper(text(name, f.src)) {
				kind = domain.KindConst
			}
			out = append(out, domain.Export{
				Name:      text(name, f.src),
				Kind:      kind,
				Line:      line(decl),
				EndLine:   endLine(decl),
				Column:    column(name),
				Doc:       doc,
				HasResult: true,
			})
		}
		return out
	}
	return nil
}

func (f *jsFile) typeExport(decl, name *sitter.Node, kind domain.SymbolKind, doc string) domain.Export {
	e := domain.Export{
		Name:    text(name, f.src),
		Kind:    kind,
		Line:    line(decl),
		EndLine: endLine(decl),
		Column:  column(name),
		Doc:     doc,
	}
	tracker := newBodyTracker()
	f.collect(decl, tracker, &e)
	e.Imports, e.Dependencies = tracker.imports, tracker.deps
	if kind == domain.KindClass {
		e.CallbackDepth = callbackDepth(decl.ChildByFieldName("body"), "call_expression", jsFuncTypes)
	}
	return e
}

// functionExport builds a function export. fn is the node holding the
// parameters and body: the declaration itself or an assigned function
// expression.
func (f *jsFile) functionExport(decl, name, fn *sitter.Node, doc string) domain.Export {
	body := fn.ChildByFieldName("body")
	e := domain.Export{
		Name:      text(name, f.src),
		Kind:      domain.KindFunction,
		Line:      line(decl),
		EndLine:   endLine(decl),
		Column:    column(name),
		Doc:       doc,
		Params:    f.params(fn),
		HasResult: fn.ChildByFieldName("return_type") != nil || jsReturnsValue(fn),
	}

	params := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		params[strings.TrimPrefix(p.Name, "...")] = true
	}
	tracker := newBodyTracker()
	f.collect(fn, tracker, &e)
	e.Imports, e.Dependencies = tracker.imports, tracker.deps
	f.effects(body, params, &e)
	e.CallbackDepth = callbackDepth(body, "call_expression", jsFuncTypes)
	return e
}

func (f *jsFile) params(fn *sitter.Node) []domain.Param {
	if single := fn.ChildByFieldName("parameter"); single != nil {
		return []domain.Param{{Name: text(single, f.src)}}
	}
	var out []domain.Param
	for _, c := range namedChildren(fn.ChildByFieldName("parameters")) {
		var p domain.Param
		switch c.Type() {
		case "identifier", "rest_pattern", "object_pattern", "array_pattern":
			p.Name = text(c, f.src)
		case "assignment_pattern":
			p.Name = text(c.ChildByFieldName("left"), f.src)
			p.Default = text(c.ChildByFieldName("right"), f.src)
		case "required_parameter", "optional_parameter":
			p.Name = text(c.ChildByFieldName("pattern"), f.src)
			p.Type = strings.TrimSpace(strings.TrimPrefix(text(c.ChildByFieldName("type"), f.src), ":"))
			p.Default = text(c.ChildByFieldName("value"), f.src)
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

// jsDoc returns the JSDoc block directly above n.
func (f *jsFile) jsDoc(n *sitter.Node) string {
	c := precedingComment(n, f.src)
	if c == nil {
		return ""
	}
	raw := text(c, f.src)
	if !strings.HasPrefix(raw, "/**") {
		return ""
	}
	raw = strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		l = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(l), "*"))
		if l != "" {
			lines = append(lines, l)
		}
	}
	return strings.Join(lines, "\n")
}

// collect records literals and import usage anywhere under n.
func (f *jsFile) collect(n *sitter.Node, tracker *bodyTracker, e *domain.Export) {
	walk(n, func(x *sitter.Node) bool {
		switch x.Type() {
		case "comment", "template_string":
			return false
		case "number":
			e.Literals = append(e.Literals, domain.Literal{Value: text(x, f.src), Kind: domain.LiteralNumber, Line: line(x)})
		case "string":
			e.Literals = append(e.Literals, domain.Literal{Value: text(x, f.src), Kind: domain.LiteralString, Line: line(x)})
			return false
		case "member_expression":
			obj := x.ChildByFieldName("object")
			if obj != nil && obj.Type() == "identifier" {
				if mod, ok := f.bindings[text(obj, f.src)]; ok {
					tracker.use(mod, text(x, f.src))
					return false
				}
			}
		default:
			if jsRefTypes[x.Type()] {
				if mod, ok := f.bindings[text(x, f.src)]; ok {
					tracker.use(mod, text(x, f.src))
				}
			}
		}
		return true
	})
}

func (f *jsFile) effects(body *sitter.Node, params map[string]bool, e *domain.Export) {
	locals := make(map[string]bool)
	walk(body, func(n *sitter.Node) bool {
		if n.Type() == "variable_declarator" {
			if name := n.ChildByFieldName("name"); name != nil && name.Type() == "identifier" {
				locals[text(name, f.src)] = true
			}
		}
		return true
	})

	walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case "call_expression":
			f.callEffect(n, params, locals, e)
		case "assignment_expression", "augmented_assignment_expression":
			f.writeEffect(n.ChildByFieldName("left"), params, locals, e)
		case "update_expression":
			f.writeEffect(n.ChildByFieldName("argument"), params, locals, e)
		}
		return true
	})
}

func (f *jsFile) callEffect(call *sitter.Node, params, locals map[string]bool, e *domain.Export) {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return
	}
	switch fn.Type() {
	case "identifier":
		if name := text(fn, f.src); jsIOCalls[name] && !locals[name] {
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectIO, Target: name, Line: line(call)})
		}
	case "member_expression":
		root := rootName(fn, f.src)
		target := text(fn, f.src)
		if root == "" || locals[root] {
			return
		}
		switch {
		case params[root]:
			if jsMutators[text(fn.ChildByFieldName("property"), f.src)] {
				e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectParamMutation, Target: target, Line: line(call)})
			}
		case jsIORoots[root] || jsIOModules[f.bindings[root]] ||
			strings.HasPrefix(target, "process.std") || target == "process.exit":
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectIO, Target: target, Line: line(call)})
		}
	}
}

func (f *jsFile) writeEffect(left *sitter.Node, params, locals map[string]bool, e *domain.Export) {
	if left == nil {
		return
	}
	switch left.Type() {
	case "identifier":
		if name := text(left, f.src); f.module[name] && !locals[name] && !params[name] {
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: name, Line: line(left)})
		}
	case "member_expression", "subscript_expression":
		root := rootName(left, f.src)
		switch {
		case root == "" || root == "this" || locals[root]:
		case params[root]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectParamMutation, Target: text(left, f.src), Line: line(left)})
		case f.module[root] || jsIORoots[root]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: text(left, f.src), Line: line(left)})
		}
	}
}

func declarators(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, c := range namedChildren(n) {
		if c.Type() == "variable_declarator" {
			out = append(out, c)
		}
	}
	return out
}

// declNames returns the name nodes a top-level declaration introduces.
func declNames(decl *sitter.Node) []*sitter.Node {
	if decl == nil {
		return nil
	}
	if decl.Type() == "lexical_declaration" || decl.Type() == "variable_declaration" {
		var out []*sitter.Node
		for _, d := range declarators(decl) {
			if name := d.ChildByFieldName("name"); name != nil {
				out = append(out, name)
			}
		}
		return out
	}
	if name := decl.ChildByFieldName("name"); name != nil {
		return []*sitter.Node{name}
	}
	return nil
}

func countClassMembers(class *sitter.Node) int {
	n := 0
	for _, c := range namedChildren(class.ChildByFieldName("body")) {
		if c.Type() == "method_definition" {
			n++
		}
	}
	return n
}

func jsReturnsValue(fn *sitter.Node) bool {
	body := fn.ChildByFieldName("body")
	if body != nil && body.Type() != "statement_block" {
		// Expression-bodied arrow function.
		return true
	}
	found := false
	walk(body, func(n *sitter.Node) bool {
		if n.Type() != "statement_block" && jsFuncTypes[n.Type()] {
			return false
		}
		if n.Type() == "class_declaration" {
			return false
		}
		if n.Type() == "return_statement" && n.NamedChildCount() > 0 {
			found = true
		}
		return !found
	})
	return found
}
