package ir

// PVar binds a name. Synthetic marks binders invented by the front end
// (gensyms); the preferred-name pass only ever touches synthetic binders.
type PVar struct {
	Name      string
	Synthetic bool
	Span      Pos
}

func (p *PVar) pattern() {}
func (p *PVar) Pos() Pos { return p.Span }

// PTuple destructures a tuple.
type PTuple struct {
	Elems []Pattern
	Span  Pos
}

func (p *PTuple) pattern() {}
func (p *PTuple) Pos() Pos { return p.Span }

// PList destructures a proper list of fixed length.
type PList struct {
	Elems []Pattern
	Span  Pos
}

func (p *PList) pattern() {}
func (p *PList) Pos() Pos { return p.Span }

// PCons destructures head elements and a tail: [h1, h2 | t].
type PCons struct {
	Heads []Pattern
	Tail  Pattern
	Span  Pos
}

func (p *PCons) pattern() {}
func (p *PCons) Pos() Pos { return p.Span }

// PMapPair is one `key => subpattern` entry. Keys are expression nodes
// (atoms, strings, pinned vars); any variable in key position is a read.
type PMapPair struct {
	Key   Node
	Value Pattern
}

// PMap destructures a map by a subset of its keys.
type PMap struct {
	Pairs []PMapPair
	Span  Pos
}

func (p *PMap) pattern() {}
func (p *PMap) Pos() Pos { return p.Span }

// PStruct destructures a struct: %Mod.Sub{field: pat, ...}.
type PStruct struct {
	Segs  []string
	Pairs []PMapPair
	Span  Pos
}

func (p *PStruct) pattern() {}
func (p *PStruct) Pos() Pos { return p.Span }

// PLit matches a literal value exactly. Value is restricted to literal node
// shapes (Atom, IntLit, FloatLit, StringLit, BoolLit, NilLit).
type PLit struct {
	Value Node
	Span  Pos
}

func (p *PLit) pattern() {}
func (p *PLit) Pos() Pos { return p.Span }

// PAlias binds a name to a sub-pattern: name = pat.
type PAlias struct {
	Name string
	Sub  Pattern
	Span Pos
}

func (p *PAlias) pattern() {}
func (p *PAlias) Pos() Pos { return p.Span }

// PPin is a pinned variable ^name: match against an existing binding, a read
// rather than a bind.
type PPin struct {
	Name string
	Span Pos
}

func (p *PPin) pattern() {}
func (p *PPin) Pos() Pos { return p.Span }

// PBinSegment is one segment of a binary pattern. Size expressions may
// reference variables bound earlier in the same pattern or enclosing scope.
type PBinSegment struct {
	Value  Pattern
	Size   Node
	Kind   SegKind
	Unit   int
	Signed bool
	Little bool
}

// PBin is a binary/bitstring pattern <<...>>.
type PBin struct {
	Segs []PBinSegment
	Span Pos
}

func (p *PBin) pattern() {}
func (p *PBin) Pos() Pos { return p.Span }
