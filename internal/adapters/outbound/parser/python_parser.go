package parser

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/aiready/aiready/internal/domain"
	"github.com/aiready/aiready/internal/domain/naming"
)

// PythonParser implements domain.SourceParser with tree-sitter.
type PythonParser struct {
	lang *sitter.Language
}

func NewPythonParser() *PythonParser {
	return &PythonParser{lang: python.GetLanguage()}
}

func (p *PythonParser) Language() domain.Language { return domain.LanguagePython }
func (p *PythonParser) Extensions() []string      { return []string{".py", ".pyi"} }

var (
	pyIOBuiltins  = map[string]bool{"print": true, "open": true, "input": true, "exec": true, "eval": true}
	pyIOModules   = map[string]bool{"os": true, "sys": true, "subprocess": true, "shutil": true, "requests": true, "socket": true, "urllib": true, "logging": true, "httpx": true}
	pyMutators    = map[string]bool{"append": true, "extend": true, "insert": true, "remove": true, "pop": true, "clear": true, "update": true, "add": true, "setdefault": true, "discard": true, "sort": true}
	pyFuncTypes   = map[string]bool{"lambda": true}
	pyIdentifiers = map[string]bool{"identifier": true}
)

func (p *PythonParser) Parse(ctx context.Context, src []byte, path string) (*domain.ParsedFile, error) {
	tree, err := parseTree(ctx, p.lang, src, path)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	root := tree.RootNode()

	f := &pyFile{
		src:      src,
		bindings: make(map[string]string),
		module:   make(map[string]bool),
	}
	result := &domain.ParsedFile{Path: path, Language: domain.LanguagePython}

	for _, n := range namedChildren(root) {
		switch n.Type() {
		case "import_statement", "import_from_statement":
			result.Imports = append(result.Imports, f.importEntry(n))
		case "expression_statement":
			for _, name := range f.assignedNames(n) {
				f.module[text(name, src)] = true
			}
		}
	}

	declared := make(map[uint32]bool)
	var private []*sitter.Node
	for _, n := range namedChildren(root) {
		def := n
		if n.Type() == "decorated_definition" {
			def = n.ChildByFieldName("definition")
			if def == nil {
				continue
			}
		}
		switch def.Type() {
		case "function_definition":
			result.TotalSymbols++
			name := def.ChildByFieldName("name")
			declared[name.StartByte()] = true
			if strings.HasPrefix(text(name, src), "_") {
				if !isDunder(text(name, src)) {
					private = append(private, def)
				}
				continue
			}
			result.Exports = append(result.Exports, f.functionExport(n, def))
		case "class_definition":
			result.TotalSymbols++
			result.TotalSymbols += countMethods(def)
			if name := text(def.ChildByFieldName("name"), src); !strings.HasPrefix(name, "_") {
				result.Exports = append(result.Exports, f.classExport(n, def))
			}
		case "expression_statement":
			for _, name := range f.assignedNames(def) {
				result.TotalSymbols++
				id := text(name, src)
				if strings.HasPrefix(id, "_") {
					continue
				}
				kind := domain.KindVariable
				if naming.IsAllUpper(id) {
					kind = domain.KindConst
				}
				e := domain.Export{
					Name:      id,
					Kind:      kind,
					Line:      line(def),
					EndLine:   endLine(def),
					Column:    column(name),
					HasResult: true,
				}
				if c := precedingComment(def, src); c != nil {
					e.Doc = strings.TrimSpace(strings.TrimPrefix(text(c, src), "#"))
				}
				result.Exports = append(result.Exports, e)
			}
		}
	}

	if len(private) > 0 {
		used := referenced(root, src, pyIdentifiers, declared)
		for _, def := range private {
			name := text(def.ChildByFieldName("name"), src)
			if !used[name] {
				result.Unreferenced = append(result.Unreferenced, domain.Symbol{Name: name, Line: line(def)})
			}
		}
	}
	return result, nil
}

// pyFile carries per-file lookup tables.
type pyFile struct {
	src []byte
	// bindings maps a locally bound import name to its module.
	bindings map[string]string
	// module holds names assigned at module level.
	module map[string]bool
}

func (f *pyFile) importEntry(n *sitter.Node) domain.Import {
	entry := domain.Import{Line: line(n)}
	if n.Type() == "import_statement" {
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "dotted_name":
				mod := text(c, f.src)
				entry.Source = joinSource(entry.Source, mod)
				f.bindings[strings.SplitN(mod, ".", 2)[0]] = mod
			case "aliased_import":
				mod := text(c.ChildByFieldName("name"), f.src)
				alias := text(c.ChildByFieldName("alias"), f.src)
				entry.Source = joinSource(entry.Source, mod)
				entry.Names = append(entry.Names, alias)
				f.bindings[alias] = mod
			}
		}
		return entry
	}

	mod := n.ChildByFieldName("module_name")
	entry.Source = text(mod, f.src)
	for _, c := range namedChildren(n) {
		if mod != nil && c.StartByte() == mod.StartByte() {
			continue
		}
		var bound string
		switch c.Type() {
		case "dotted_name":
			bound = text(c, f.src)
		case "aliased_import":
			bound = text(c.ChildByFieldName("alias"), f.src)
		default:
			continue
		}
		entry.Names = append(entry.Names, bound)
		f.bindings[bound] = entry.Source
	}
	return entry
}

func joinSource(have, mod string) string {
	if have == "" {
		return mod
	}
	return have + ", " + mod
}

// assignedNames returns the identifiers a module-level assignment binds.
func (f *pyFile) assignedNames(stmt *sitter.Node) []*sitter.Node {
	if stmt.NamedChildCount() == 0 {
		return nil
	}
	assign := stmt.NamedChild(0)
	if assign.Type() != "assignment" {
		return nil
	}
	left := assign.ChildByFieldName("left")
	switch left.Type() {
	case "identifier":
		return []*sitter.Node{left}
	case "pattern_list", "tuple_pattern":
		var out []*sitter.Node
		for _, c := range namedChildren(left) {
			if c.Type() == "identifier" {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

// functionExport builds the export for def. outer is the decorated
// wrapper when there is one, so line numbers include decorators.
func (f *pyFile) functionExport(outer, def *sitter.Node) domain.Export {
	name := def.ChildByFieldName("name")
	body := def.ChildByFieldName("body")
	e := domain.Export{
		Name:      text(name, f.src),
		Kind:      domain.KindFunction,
		Line:      line(outer),
		EndLine:   endLine(outer),
		Column:    column(name),
		Params:    f.params(def.ChildByFieldName("parameters")),
		Doc:       f.docstring(body),
		HasResult: def.ChildByFieldName("return_type") != nil || returnsValue(body),
	}

	paramNames := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		paramNames[strings.TrimLeft(p.Name, "*")] = true
	}
	f.scan(outer, def, paramNames, &e)
	e.CallbackDepth = callbackDepth(body, "call", pyFuncTypes)
	return e
}

func (f *pyFile) classExport(outer, def *sitter.Node) domain.Export {
	name := def.ChildByFieldName("name")
	body := def.ChildByFieldName("body")
	e := domain.Export{
		Name:    text(name, f.src),
		Kind:    domain.KindClass,
		Line:    line(outer),
		EndLine: endLine(outer),
		Column:  column(name),
		Doc:     f.docstring(body),
	}
	tracker := newBodyTracker()
	f.collect(outer, tracker, &e)
	e.Imports, e.Dependencies = tracker.imports, tracker.deps
	e.CallbackDepth = callbackDepth(body, "call", pyFuncTypes)
	return e
}

func (f *pyFile) params(n *sitter.Node) []domain.Param {
	var out []domain.Param
	keywordOnly := false
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		p := domain.Param{KeywordOnly: keywordOnly}
		switch c.Type() {
		case "identifier":
			p.Name = text(c, f.src)
		case "typed_parameter":
			inner := c.NamedChild(0)
			p.Name = text(inner, f.src)
			p.Type = text(c.ChildByFieldName("type"), f.src)
			if inner.Type() == "list_splat_pattern" {
				p.KeywordOnly = false
				keywordOnly = true
			}
		case "default_parameter", "typed_default_parameter":
			p.Name = text(c.ChildByFieldName("name"), f.src)
			p.Type = text(c.ChildByFieldName("type"), f.src)
			p.Default = text(c.ChildByFieldName("value"), f.src)
		case "list_splat_pattern":
			out = append(out, domain.Param{Name: text(c, f.src)})
			keywordOnly = true
			continue
		case "dictionary_splat_pattern":
			out = append(out, domain.Param{Name: text(c, f.src)})
			continue
		case "keyword_separator", "*":
			keywordOnly = true
			continue
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

// docstring returns the leading string of a block, if any.
func (f *pyFile) docstring(body *sitter.Node) string {
	if body == nil || body.NamedChildCount() == 0 {
		return ""
	}
	first := body.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() != 1 {
		return ""
	}
	if s := first.NamedChild(0); s.Type() == "string" {
		return strings.Trim(text(s, f.src), `"'`)
	}
	return ""
}

// scan fills in literals, imports and side effects of a function.
func (f *pyFile) scan(outer, def *sitter.Node, params map[string]bool, e *domain.Export) {
	locals := make(map[string]bool)
	globals := make(map[string]bool)
	walk(def.ChildByFieldName("body"), func(n *sitter.Node) bool {
		switch n.Type() {
		case "global_statement":
			for _, id := range namedChildren(n) {
				globals[text(id, f.src)] = true
			}
		case "assignment", "augmented_assignment":
			left := n.ChildByFieldName("left")
			if left != nil && left.Type() == "identifier" && n.Type() == "assignment" && !globals[text(left, f.src)] {
				locals[text(left, f.src)] = true
			}
		case "for_statement":
			if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
				locals[text(left, f.src)] = true
			}
		}
		return true
	})

	tracker := newBodyTracker()
	f.collect(outer, tracker, e)
	e.Imports, e.Dependencies = tracker.imports, tracker.deps

	walk(def.ChildByFieldName("body"), func(n *sitter.Node) bool {
		switch n.Type() {
		case "call":
			f.callEffect(n, params, locals, e)
		case "assignment", "augmented_assignment":
			f.writeEffect(n.ChildByFieldName("left"), params, locals, globals, e)
		}
		return true
	})
}

// collect records literals and import usage anywhere under n.
func (f *pyFile) collect(n *sitter.Node, tracker *bodyTracker, e *domain.Export) {
	walk(n, func(x *sitter.Node) bool {
		switch x.Type() {
		case "integer", "float":
			e.Literals = append(e.Literals, domain.Literal{Value: text(x, f.src), Kind: domain.LiteralNumber, Line: line(x)})
		case "string":
			if !isDocstring(x) && !hasChild(x, "interpolation") {
				e.Literals = append(e.Literals, domain.Literal{Value: text(x, f.src), Kind: domain.LiteralString, Line: line(x)})
			}
			return false
		case "attribute":
			obj := x.ChildByFieldName("object")
			if obj != nil && obj.Type() == "identifier" {
				if mod, ok := f.bindings[text(obj, f.src)]; ok {
					tracker.use(mod, text(x, f.src))
					return false
				}
			}
		case "identifier":
			if mod, ok := f.bindings[text(x, f.src)]; ok {
				tracker.use(mod, text(x, f.src))
			}
		}
		return true
	})
}

func (f *pyFile) callEffect(call *sitter.Node, params, locals map[string]bool, e *domain.Export) {
	fn := call.ChildByFieldName("function")
	switch fn.Type() {
	case "identifier":
		if name := text(fn, f.src); pyIOBuiltins[name] && !locals[name] {
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectIO, Target: name, Line: line(call)})
		}
	case "attribute":
		root := rootName(fn, f.src)
		if root == "" || locals[root] {
			return
		}
		switch {
		case !params[root] && (pyIOModules[root] || pyIOModules[strings.SplitN(f.bindings[root], ".", 2)[0]]):
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectIO, Target: text(fn, f.src), Line: line(call)})
		case params[root] && pyMutators[text(fn.ChildByFieldName("attribute"), f.src)]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectParamMutation, Target: text(fn, f.src), Line: line(call)})
		}
	}
}

func (f *pyFile) writeEffect(left *sitter.Node, params, locals, globals map[string]bool, e *domain.Export) {
	if left == nil {
		return
	}
	switch left.Type() {
	case "identifier":
		if name := text(left, f.src); globals[name] {
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: name, Line: line(left)})
		}
	case "attribute", "subscript":
		root := rootName(left, f.src)
		switch {
		case root == "" || locals[root]:
		case params[root]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectParamMutation, Target: text(left, f.src), Line: line(left)})
		case f.module[root] || globals[root]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: text(left, f.src), Line: line(left)})
		}
	}
}

func isDocstring(s *sitter.Node) bool {
	stmt := s.Parent()
	if stmt == nil || stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return false
	}
	block := stmt.Parent()
	if block == nil || (block.Type() != "block" && block.Type() != "module") {
		return false
	}
	return block.NamedChild(0).StartByte() == stmt.StartByte()
}

func hasChild(n *sitter.Node, typ string) bool {
	for _, c := range namedChildren(n) {
		if c.Type() == typ {
			return true
		}
	}
	return false
}

func returnsValue(body *sitter.Node) bool {
	found := false
	walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition", "lambda", "class_definition":
			return false
		case "return_statement", "yield":
			if n.NamedChildCount() > 0 {
				found = true
			}
		}
		return !found
	})
	return found
}

func countMethods(class *sitter.Node) int {
	n := 0
	for _, c := range namedChildren(class.ChildByFieldName("body")) {
		if c.Type() == "decorated_definition" {
			c = c.ChildByFieldName("definition")
		}
		if c != nil && c.Type() == "function_definition" {
			n++
		}
	}
	return n
}

func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__")
}
