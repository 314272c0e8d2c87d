package domain

// ParsedFile is the structural record a language parser produces for one file.
type ParsedFile struct {
	Path         string   `json:"path"`
	Language     Language `json:"language"`
	Imports      []Import `json:"imports,omitempty"`
	Exports      []Export `json:"exports,omitempty"`
	TotalSymbols int      `json:"total_symbols"`
	// Unreferenced lists private top-level functions that nothing in the
	// file refers to.
	Unreferenced []Symbol `json:"unreferenced,omitempty"`
}

// Import is one import statement.
type Import struct {
	Source string   `json:"source"`
	Names  []string `json:"names,omitempty"`
	Line   int      `json:"line"`
}

// Export is one exported top-level symbol.
type Export struct {
	Name     string     `json:"name"`
	Kind     SymbolKind `json:"kind"`
	Receiver string     `json:"receiver,omitempty"`
	Line     int        `json:"line"`
	EndLine  int        `json:"end_line"`
	Column   int        `json:"column"`
	Params   []Param    `json:"params,omitempty"`
	// HasResult is true when the symbol declares or returns a value.
	HasResult     bool      `json:"has_result"`
	Doc           string    `json:"doc,omitempty"`
	Imports       []string  `json:"imports,omitempty"`
	Dependencies  []string  `json:"dependencies,omitempty"`
	Literals      []Literal `json:"literals,omitempty"`
	Effects       []Effect  `json:"effects,omitempty"`
	CallbackDepth int       `json:"callback_depth"`
}

// QualifiedName includes the receiver for methods.
func (e Export) QualifiedName() string {
	if e.Receiver == "" {
		return e.Name
	}
	return e.Receiver + "." + e.Name
}

// Param is one declared parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Default     string `json:"default,omitempty"`
	KeywordOnly bool   `json:"keyword_only,omitempty"`
}

// LiteralKind distinguishes numeric and string literals.
type LiteralKind string

const (
	LiteralNumber LiteralKind = "number"
	LiteralString LiteralKind = "string"
)

// Literal is a literal value used inside a symbol body or default value.
type Literal struct {
	Value string      `json:"value"`
	Kind  LiteralKind `json:"kind"`
	Line  int         `json:"line"`
}

// EffectKind classifies an observable side effect.
type EffectKind string

const (
	EffectIO            EffectKind = "io"
	EffectGlobalWrite   EffectKind = "global-write"
	EffectParamMutation EffectKind = "param-mutation"
)

// Effect is one side-effect site inside a symbol body.
type Effect struct {
	Kind   EffectKind `json:"kind"`
	Target string     `json:"target"`
	Line   int        `json:"line"`
}

// Symbol is a named location.
type Symbol struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}
