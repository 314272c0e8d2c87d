package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// parseTree parses src with a fresh tree-sitter parser. Parsers are not
// safe for concurrent use, so one is created per call. Cancellation of ctx
// never interrupts a file halfway.
func parseTree(ctx context.Context, lang *sitter.Language, src []byte, path string) (*sitter.Tree, error) {
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(lang)

	tree, err := p.ParseCtx(context.WithoutCancel(ctx), nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if root := tree.RootNode(); root.HasError() {
		ln := firstErrorLine(root)
		tree.Close()
		return nil, fmt.Errorf("parsing %s: syntax error near line %d", path, ln)
	}
	return tree, nil
}

func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return line(n)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.HasError() {
			return firstErrorLine(c)
		}
	}
	return line(n)
}

// walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), fn)
	}
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func endLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

func column(n *sitter.Node) int {
	return int(n.StartPoint().Column) + 1
}

func text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// namedChildren returns the named children of n.
func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

// bodyTracker accumulates per-symbol facts while walking a body.
type bodyTracker struct {
	imports    []string
	deps       []string
	seenImport map[string]bool
	seenDep    map[string]bool
}

func newBodyTracker() *bodyTracker {
	return &bodyTracker{seenImport: make(map[string]bool), seenDep: make(map[string]bool)}
}

func (b *bodyTracker) use(source, dep string) {
	if !b.seenImport[source] {
		b.seenImport[source] = true
		b.imports = append(b.imports, source)
	}
	if !b.seenDep[dep] {
		b.seenDep[dep] = true
		b.deps = append(b.deps, dep)
	}
}

// referenced collects the identifiers used in root, ignoring the nodes
// whose start byte is in skip.
func referenced(root *sitter.Node, src []byte, identTypes map[string]bool, skip map[uint32]bool) map[string]bool {
	used := make(map[string]bool)
	walk(root, func(n *sitter.Node) bool {
		if identTypes[n.Type()] && !skip[n.StartByte()] {
			used[text(n, src)] = true
		}
		return true
	})
	return used
}

// callbackDepth is the deepest chain of function expressions passed as
// call arguments inside n. callType names the grammar's call node and
// fnTypes its anonymous function nodes.
func callbackDepth(n *sitter.Node, callType string, fnTypes map[string]bool) int {
	best := 0
	walk(n, func(x *sitter.Node) bool {
		if x.Type() != callType {
			return true
		}
		best = max(best, callbackDepth(x.ChildByFieldName("function"), callType, fnTypes))
		for _, arg := range namedChildren(x.ChildByFieldName("arguments")) {
			if arg.Type() == "keyword_argument" {
				arg = arg.ChildByFieldName("value")
			}
			if arg == nil {
				continue
			}
			if fnTypes[arg.Type()] {
				best = max(best, 1+callbackDepth(arg.ChildByFieldName("body"), callType, fnTypes))
				continue
			}
			best = max(best, callbackDepth(arg, callType, fnTypes))
		}
		return false
	})
	return best
}

// rootName returns the leftmost identifier of a member or subscript chain.
// Chains that pass through a call have no root.
func rootName(n *sitter.Node, src []byte) string {
	for n != nil {
		switch n.Type() {
		case "identifier", "this":
			return text(n, src)
		case "attribute", "member_expression", "subscript", "subscript_expression", "parenthesized_expression":
			next := n.ChildByFieldName("object")
			if next == nil {
				next = n.ChildByFieldName("value")
			}
			if next == nil && n.NamedChildCount() > 0 {
				next = n.NamedChild(0)
			}
			n = next
		default:
			return ""
		}
	}
	return ""
}

// precedingComment returns the comment directly above n, if any.
func precedingComment(n *sitter.Node, src []byte) *sitter.Node {
	prev := n.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return nil
	}
	if int(prev.EndPoint().Row)+1 < int(n.StartPoint().Row) {
		return nil
	}
	return prev
}
