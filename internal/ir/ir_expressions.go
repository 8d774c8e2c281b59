package ir

// Var is a variable read. Whether a name is a binding occurrence or a
// reference is decided purely by tree position: names inside Patterns bind,
// Var nodes read.
type Var struct {
	Name string
	Span Pos
	Attr Meta
}

func (v *Var) node()    {}
func (v *Var) Pos() Pos { return v.Span }

// If is a two-armed conditional. Else may be nil.
type If struct {
	Cond Node
	Then Node
	Else Node
	Span Pos
	Attr Meta
}

func (i *If) node()    {}
func (i *If) Pos() Pos { return i.Span }

// Case is a case expression: scrutinee plus ordered clauses, each with one
// pattern.
type Case struct {
	Subject Node
	Clauses []Clause
	Span    Pos
	Attr    Meta
}

func (c *Case) node()    {}
func (c *Case) Pos() Pos { return c.Span }

// Receive is a receive block. AfterMs/After are the timeout clause and may
// both be nil.
type Receive struct {
	Clauses []Clause
	AfterMs Node
	After   Node
	Span    Pos
	Attr    Meta
}

func (r *Receive) node()    {}
func (r *Receive) Pos() Pos { return r.Span }

// Try is a try/rescue/catch/else/after block. Any handler list may be empty
// and After/ElseOf nil.
type Try struct {
	Body   Node
	Rescue []Clause
	Catch  []Clause
	Else   []Clause
	After  Node
	Span   Pos
	Attr   Meta
}

func (t *Try) node()    {}
func (t *Try) Pos() Pos { return t.Span }

// Generator is one `pat <- source` arm of a comprehension.
type Generator struct {
	Pat Pattern
	Src Node
}

// For is a comprehension: generators, filters, body and an optional :into
// target.
type For struct {
	Gens    []Generator
	Filters []Node
	Body    Node
	Into    Node
	Span    Pos
	Attr    Meta
}

func (f *For) node()    {}
func (f *For) Pos() Pos { return f.Span }

// Fn is an anonymous function with one or more clauses.
type Fn struct {
	Clauses []Clause
	Span    Pos
	Attr    Meta
}

func (f *Fn) node()    {}
func (f *Fn) Pos() Pos { return f.Span }

// BinOp is a binary operation; Op is the Elixir operator lexeme ("+", "<>",
// "==", ...).
type BinOp struct {
	Op    string
	Left  Node
	Right Node
	Span  Pos
	Attr  Meta
}

func (b *BinOp) node()    {}
func (b *BinOp) Pos() Pos { return b.Span }

// UnOp is a unary operation ("-", "not", "!").
type UnOp struct {
	Op      string
	Operand Node
	Span    Pos
	Attr    Meta
}

func (u *UnOp) node()    {}
func (u *UnOp) Pos() Pos { return u.Span }

// Call is a local call: fun(args).
type Call struct {
	Fun  string
	Args []Node
	Span Pos
	Attr Meta
}

func (c *Call) node()    {}
func (c *Call) Pos() Pos { return c.Span }

// RemoteCall is a qualified call: Mod.Sub.fun(args). Segs holds the module
// path segments in order.
type RemoteCall struct {
	Segs []string
	Fun  string
	Args []Node
	Span Pos
	Attr Meta
}

func (r *RemoteCall) node()    {}
func (r *RemoteCall) Pos() Pos { return r.Span }

// Access is bracket access: target[key].
type Access struct {
	Target Node
	Key    Node
	Span   Pos
	Attr   Meta
}

func (a *Access) node()    {}
func (a *Access) Pos() Pos { return a.Span }

// Dot is field access on a map or struct: target.field.
type Dot struct {
	Target Node
	Field  string
	Span   Pos
	Attr   Meta
}

func (d *Dot) node()    {}
func (d *Dot) Pos() Pos { return d.Span }

// --- Literals ---

// Atom is an atom literal, Name without the leading colon.
type Atom struct {
	Name string
	Span Pos
	Attr Meta
}

func (a *Atom) node()    {}
func (a *Atom) Pos() Pos { return a.Span }

type IntLit struct {
	Value int64
	Span  Pos
	Attr  Meta
}

func (i *IntLit) node()    {}
func (i *IntLit) Pos() Pos { return i.Span }

type FloatLit struct {
	Value float64
	Span  Pos
	Attr  Meta
}

func (f *FloatLit) node()    {}
func (f *FloatLit) Pos() Pos { return f.Span }

// StringLit is a double-quoted string. Value is the raw source text between
// the quotes and may contain #{...} interpolation slots; the scope analyzer
// scans those for variable references.
type StringLit struct {
	Value string
	Span  Pos
	Attr  Meta
}

func (s *StringLit) node()    {}
func (s *StringLit) Pos() Pos { return s.Span }

type BoolLit struct {
	Value bool
	Span  Pos
	Attr  Meta
}

func (b *BoolLit) node()    {}
func (b *BoolLit) Pos() Pos { return b.Span }

type NilLit struct {
	Span Pos
	Attr Meta
}

func (n *NilLit) node()    {}
func (n *NilLit) Pos() Pos { return n.Span }

// --- Composites ---

type Tuple struct {
	Elems []Node
	Span  Pos
	Attr  Meta
}

func (t *Tuple) node()    {}
func (t *Tuple) Pos() Pos { return t.Span }

type ListLit struct {
	Elems []Node
	Span  Pos
	Attr  Meta
}

func (l *ListLit) node()    {}
func (l *ListLit) Pos() Pos { return l.Span }

// Pair is one key => value entry of a map literal.
type Pair struct {
	Key   Node
	Value Node
}

type MapLit struct {
	Pairs []Pair
	Span  Pos
	Attr  Meta
}

func (m *MapLit) node()    {}
func (m *MapLit) Pos() Pos { return m.Span }

// KeywordPair is one `key: value` entry of a keyword list.
type KeywordPair struct {
	Key   string
	Value Node
}

type KeywordList struct {
	Pairs []KeywordPair
	Span  Pos
	Attr  Meta
}

func (k *KeywordList) node()    {}
func (k *KeywordList) Pos() Pos { return k.Span }

// SegKind is the type specifier of a binary segment.
type SegKind int

const (
	SegInteger SegKind = iota
	SegFloat
	SegBinary
	SegUTF8
)

func (k SegKind) String() string {
	switch k {
	case SegInteger:
		return "integer"
	case SegFloat:
		return "float"
	case SegBinary:
		return "binary"
	case SegUTF8:
		return "utf8"
	}
	return "integer"
}

// BinSegment is one segment of a binary constructor: value::size-type-unit.
// Size is an expression node (usually IntLit) and may be nil for defaults.
type BinSegment struct {
	Value  Node
	Size   Node
	Kind   SegKind
	Unit   int // 0 means default
	Signed bool
	Little bool
}

// BinaryLit is a binary/bitstring constructor <<...>>.
type BinaryLit struct {
	Segs []BinSegment
	Span Pos
	Attr Meta
}

func (b *BinaryLit) node()    {}
func (b *BinaryLit) Pos() Pos { return b.Span }
