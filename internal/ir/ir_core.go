// Package ir defines the tree representation the rewrite passes operate on.
// The front end produces these trees fully resolved; the passes rewrite them
// and the printer serializes the final tree to Elixir source text.
//
// The variant set is closed: passes must not invent shapes the printer does
// not recognize.
package ir

// Pos is an optional source position carried for diagnostics. The zero value
// means "no position known" (synthesized nodes).
type Pos struct {
	File string
	Line int
	Col  int
}

// IsZero reports whether the position carries no information.
func (p Pos) IsZero() bool {
	return p.File == "" && p.Line == 0 && p.Col == 0
}

// Node is the base interface for all IR nodes.
//
// Trees are strict hierarchies: no subtree is shared between siblings. A pass
// that wants to reuse a subtree must Clone it, never alias it.
type Node interface {
	node()
	Pos() Pos
}

// Pattern is the binding-form sub-language used in clauses, parameters and
// the left side of Bind.
type Pattern interface {
	pattern()
	Pos() Pos
}

// Clause is the unit iterated by case expressions, receive blocks, closures
// and try handlers: patterns, an optional guard and a body.
//
// Case and receive clauses have exactly one pattern; fn clauses may have
// several (one per parameter).
type Clause struct {
	Pats  []Pattern
	Guard Node // nil when absent
	Body  Node
}

// Module is a compilation unit: one Elixir module with its definitions and
// directives in order.
type Module struct {
	Name string // full dotted name, e.g. "Todo.ItemLive"
	Body []Node
	Span Pos
	Attr Meta
}

func (m *Module) node()    {}
func (m *Module) Pos() Pos { return m.Span }

// FunDef is a single-clause function definition. Multi-clause functions are
// represented as consecutive FunDefs with the same name; the printer merges
// them.
type FunDef struct {
	Name    string
	Params  []Pattern
	Guard   Node // nil when absent
	Body    Node
	Private bool // defp
	Span    Pos
	Attr    Meta
}

func (f *FunDef) node()    {}
func (f *FunDef) Pos() Pos { return f.Span }

// Block is an ordered statement sequence (an Elixir do-block body).
type Block struct {
	Stmts []Node
	Span  Pos
	Attr  Meta
}

func (b *Block) node()    {}
func (b *Block) Pos() Pos { return b.Span }

// Bind is a match/assignment: pattern on the left, expression on the right.
type Bind struct {
	Lhs   Pattern
	Value Node
	Span  Pos
	Attr  Meta
}

func (b *Bind) node()    {}
func (b *Bind) Pos() Pos { return b.Span }

// Attribute is a module attribute, e.g. @moduledoc or @derive.
type Attribute struct {
	Name  string
	Value Node
	Span  Pos
	Attr  Meta
}

func (a *Attribute) node()    {}
func (a *Attribute) Pos() Pos { return a.Span }

// AliasDirective is an `alias Foo.Bar` (or `alias Foo.Bar, as: Baz`) line at
// module top. Injected by the alias pass, never produced by the front end.
type AliasDirective struct {
	Segs []string // ["Foo", "Bar"]
	As   string   // "" means last segment
	Span Pos
	Attr Meta
}

func (a *AliasDirective) node()    {}
func (a *AliasDirective) Pos() Pos { return a.Span }

// Raw is the escape hatch: opaque pre-rendered Elixir text emitted verbatim.
// The analyzer only scans its #{...} interpolation slots; everything else in
// it is invisible to the passes, so liveness decisions refuse scopes that
// contain Raw.
type Raw struct {
	Text string
	Span Pos
	Attr Meta
}

func (r *Raw) node()    {}
func (r *Raw) Pos() Pos { return r.Span }
