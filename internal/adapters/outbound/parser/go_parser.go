package parser

import (
	"context"
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"go/types"
	"regexp"
	"strings"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/aiready/aiready/internal/domain"
)

// GoParser implements domain.SourceParser using go/ast.
type GoParser struct{}

func NewGoParser() *GoParser {
	return &GoParser{}
}

func (p *GoParser) Language() domain.Language { return domain.LanguageGo }
func (p *GoParser) Extensions() []string      { return []string{".go"} }

func (p *GoParser) Parse(ctx context.Context, src []byte, path string) (*domain.ParsedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	file, err := goparser.ParseFile(fset, path, src, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	g := &goFile{
		fset:     fset,
		imports:  make(map[string]string),
		pkgVars:  make(map[string]bool),
		declared: make(map[*ast.Ident]bool),
	}
	result := &domain.ParsedFile{Path: path, Language: domain.LanguageGo}

	for _, imp := range file.Imports {
		source := strings.Trim(imp.Path.Value, "`\"")
		entry := domain.Import{Source: source, Line: fset.Position(imp.Pos()).Line}
		local := defaultImportName(source)
		if imp.Name != nil {
			local = imp.Name.Name
			if local != "_" && local != "." {
				entry.Names = []string{local}
			}
		}
		g.imports[local] = source
		result.Imports = append(result.Imports, entry)
	}

	for _, decl := range file.Decls {
		if gd, ok := decl.(*ast.GenDecl); ok && gd.Tok == token.VAR {
			for _, spec := range gd.Specs {
				for _, name := range spec.(*ast.ValueSpec).Names {
					g.pkgVars[name.Name] = true
				}
			}
		}
	}

	var private []*ast.FuncDecl
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			result.TotalSymbols++
			g.declared[d.Name] = true
			if d.Name.IsExported() {
				result.Exports = append(result.Exports, g.funcExport(d))
			} else if d.Recv == nil && d.Name.Name != "init" && d.Name.Name != "main" && d.Name.Name != "_" {
				private = append(private, d)
			}
		case *ast.GenDecl:
			result.Exports = append(result.Exports, g.genExports(d, &result.TotalSymbols)...)
		}
	}

	result.Unreferenced = g.unreferenced(file, private)
	return result, nil
}

// goFile carries per-file lookup tables.
type goFile struct {
	fset     *token.FileSet
	imports  map[string]string
	pkgVars  map[string]bool
	declared map[*ast.Ident]bool
}

func (g *goFile) funcExport(d *ast.FuncDecl) domain.Export {
	start := g.fset.Position(d.Pos())
	e := domain.Export{
		Name:      d.Name.Name,
		Kind:      domain.KindFunction,
		Line:      start.Line,
		EndLine:   g.fset.Position(d.End()).Line,
		Column:    g.fset.Position(d.Name.Pos()).Column,
		Doc:       d.Doc.Text(),
		HasResult: d.Type.Results != nil && d.Type.Results.NumFields() > 0,
	}
	if d.Recv != nil && len(d.Recv.List) > 0 {
		e.Receiver = receiverType(d.Recv.List[0].Type)
	}

	params := make(map[string]bool)
	for _, field := range d.Type.Params.List {
		typ := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			e.Params = append(e.Params, domain.Param{Type: typ})
			continue
		}
		for _, n := range field.Names {
			e.Params = append(e.Params, domain.Param{Name: n.Name, Type: typ})
			params[n.Name] = true
		}
	}

	if d.Body != nil {
		g.scanBody(d.Body, params, &e)
		e.CallbackDepth = goCallbackDepth(d.Body)
	}
	return e
}

func (g *goFile) genExports(d *ast.GenDecl, total *int) []domain.Export {
	var out []domain.Export
	for _, spec := range d.Specs {
		doc := d.Doc
		switch s := spec.(type) {
		case *ast.TypeSpec:
			*total++
			if !s.Name.IsExported() {
				continue
			}
			if s.Doc != nil {
				doc = s.Doc
			}
			kind := domain.KindType
			switch s.Type.(type) {
			case *ast.StructType:
				kind = domain.KindClass
			case *ast.InterfaceType:
				kind = domain.KindInterface
			}
			out = append(out, domain.Export{
				Name:    s.Name.Name,
				Kind:    kind,
				Line:    g.fset.Position(s.Pos()).Line,
				EndLine: g.fset.Position(s.End()).Line,
				Column:  g.fset.Position(s.Name.Pos()).Column,
				Doc:     doc.Text(),
			})
		case *ast.ValueSpec:
			if s.Doc != nil {
				doc = s.Doc
			}
			kind := domain.KindVariable
			if d.Tok == token.CONST {
				kind = domain.KindConst
			}
			for _, name := range s.Names {
				*total++
				if !name.IsExported() {
					continue
				}
				out = append(out, domain.Export{
					Name:      name.Name,
					Kind:      kind,
					Line:      g.fset.Position(name.Pos()).Line,
					EndLine:   g.fset.Position(s.End()).Line,
					Column:    g.fset.Position(name.Pos()).Column,
					Doc:       doc.Text(),
					HasResult: true,
				})
			}
		}
	}
	return out
}

var (
	ioPackages = map[string]bool{"fmt": true, "log": true, "os": true, "io/ioutil": true, "net/http": true, "os/exec": true}
	ioFuncs    = regexp.MustCompile(`^(Print|Fprint|Fatal|Panic|WriteFile|Create|Remove|Mkdir|Rename|Setenv|Unsetenv|Chdir|Exit|OpenFile|Get|Post|Head|Command)`)
)

// scanBody collects imports used, literals and side effects of a function
// body into e.
func (g *goFile) scanBody(body *ast.BlockStmt, params map[string]bool, e *domain.Export) {
	locals := make(map[string]bool)
	seenImport := make(map[string]bool)
	seenDep := make(map[string]bool)

	ast.Inspect(body, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.AssignStmt:
			if x.Tok == token.DEFINE {
				for _, lhs := range x.Lhs {
					if id, ok := lhs.(*ast.Ident); ok {
						locals[id.Name] = true
					}
				}
				return true
			}
			for _, lhs := range x.Lhs {
				g.recordWrite(lhs, params, locals, e)
			}
		case *ast.RangeStmt:
			if x.Tok == token.DEFINE {
				for _, v := range []ast.Expr{x.Key, x.Value} {
					if id, ok := v.(*ast.Ident); ok {
						locals[id.Name] = true
					}
				}
			}
		case *ast.IncDecStmt:
			g.recordWrite(x.X, params, locals, e)
		case *ast.ValueSpec:
			for _, id := range x.Names {
				locals[id.Name] = true
			}
		case *ast.BasicLit:
			switch x.Kind {
			case token.INT, token.FLOAT:
				e.Literals = append(e.Literals, domain.Literal{Value: x.Value, Kind: domain.LiteralNumber, Line: g.line(x)})
			case token.STRING:
				e.Literals = append(e.Literals, domain.Literal{Value: x.Value, Kind: domain.LiteralString, Line: g.line(x)})
			}
		case *ast.SelectorExpr:
			pkg, ok := x.X.(*ast.Ident)
			if !ok || locals[pkg.Name] || params[pkg.Name] {
				return true
			}
			path, ok := g.imports[pkg.Name]
			if !ok {
				return true
			}
			if !seenImport[path] {
				seenImport[path] = true
				e.Imports = append(e.Imports, path)
			}
			dep := pkg.Name + "." + x.Sel.Name
			if !seenDep[dep] {
				seenDep[dep] = true
				e.Dependencies = append(e.Dependencies, dep)
			}
		case *ast.CallExpr:
			if target, ok := g.ioCall(x, locals, params); ok {
				e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectIO, Target: target, Line: g.line(x)})
			}
		}
		return true
	})
}

func (g *goFile) ioCall(call *ast.CallExpr, locals, params map[string]bool) (string, bool) {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "println" || fn.Name == "print" {
			return fn.Name, true
		}
	case *ast.SelectorExpr:
		pkg, ok := fn.X.(*ast.Ident)
		if !ok || locals[pkg.Name] || params[pkg.Name] {
			return "", false
		}
		if ioPackages[g.imports[pkg.Name]] && ioFuncs.MatchString(fn.Sel.Name) {
			return pkg.Name + "." + fn.Sel.Name, true
		}
	}
	return "", false
}

// recordWrite notes assignments to package variables and to fields or
// elements reached through a parameter.
func (g *goFile) recordWrite(lhs ast.Expr, params, locals map[string]bool, e *domain.Export) {
	switch x := lhs.(type) {
	case *ast.Ident:
		if g.pkgVars[x.Name] && !locals[x.Name] && !params[x.Name] {
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: x.Name, Line: g.line(x)})
		}
	case *ast.SelectorExpr, *ast.IndexExpr, *ast.StarExpr:
		root := rootIdent(x)
		if root == nil {
			return
		}
		switch {
		case params[root.Name] && !locals[root.Name]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectParamMutation, Target: types.ExprString(lhs), Line: g.line(x)})
		case g.pkgVars[root.Name] && !locals[root.Name]:
			e.Effects = append(e.Effects, domain.Effect{Kind: domain.EffectGlobalWrite, Target: types.ExprString(lhs), Line: g.line(x)})
		}
	}
}

func (g *goFile) line(n ast.Node) int {
	return g.fset.Position(n.Pos()).Line
}

// unreferenced returns the private functions no identifier in the file
// refers to.
func (g *goFile) unreferenced(file *ast.File, private []*ast.FuncDecl) []domain.Symbol {
	if len(private) == 0 {
		return nil
	}
	used := make(map[string]bool)
	insp := inspector.New([]*ast.File{file})
	insp.Preorder([]ast.Node{(*ast.Ident)(nil)}, func(n ast.Node) {
		id := n.(*ast.Ident)
		if !g.declared[id] {
			used[id.Name] = true
		}
	})

	var out []domain.Symbol
	for _, d := range private {
		if !used[d.Name.Name] {
			out = append(out, domain.Symbol{Name: d.Name.Name, Line: g.line(d)})
		}
	}
	return out
}

// goCallbackDepth is the deepest chain of function literals passed as call
// arguments inside n.
func goCallbackDepth(n ast.Node) int {
	best := 0
	ast.Inspect(n, func(x ast.Node) bool {
		call, ok := x.(*ast.CallExpr)
		if !ok {
			return true
		}
		best = max(best, goCallbackDepth(call.Fun))
		for _, arg := range call.Args {
			if fl, ok := arg.(*ast.FuncLit); ok {
				best = max(best, 1+goCallbackDepth(fl.Body))
				continue
			}
			best = max(best, goCallbackDepth(arg))
		}
		return false
	})
	return best
}

func rootIdent(expr ast.Expr) *ast.Ident {
	for {
		switch x := expr.(type) {
		case *ast.Ident:
			return x
		case *ast.SelectorExpr:
			expr = x.X
		case *ast.IndexExpr:
			expr = x.X
		case *ast.StarExpr:
			expr = x.X
		case *ast.ParenExpr:
			expr = x.X
		default:
			return nil
		}
	}
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// defaultImportName guesses the package name of an import path.
func defaultImportName(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if majorVersion.MatchString(name) && len(parts) > 1 {
		name = parts[len(parts)-2]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "")
}

func receiverType(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return "*" + receiverType(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	default:
		return ""
	}
}
