package ir

// Clone returns a deep copy of n. Trees are strict hierarchies, so a pass
// that wants to place an existing subtree somewhere else must clone it.
func Clone(n Node) Node {
	if n == nil {
		return nil
	}
	switch t := n.(type) {
	case *Module:
		return &Module{Name: t.Name, Body: cloneNodes(t.Body), Span: t.Span, Attr: t.Attr}
	case *FunDef:
		return &FunDef{
			Name:    t.Name,
			Params:  ClonePatterns(t.Params),
			Guard:   Clone(t.Guard),
			Body:    Clone(t.Body),
			Private: t.Private,
			Span:    t.Span,
			Attr:    t.Attr,
		}
	case *Block:
		return &Block{Stmts: cloneNodes(t.Stmts), Span: t.Span, Attr: t.Attr}
	case *Bind:
		return &Bind{Lhs: ClonePattern(t.Lhs), Value: Clone(t.Value), Span: t.Span, Attr: t.Attr}
	case *Attribute:
		return &Attribute{Name: t.Name, Value: Clone(t.Value), Span: t.Span, Attr: t.Attr}
	case *AliasDirective:
		return &AliasDirective{Segs: cloneStrings(t.Segs), As: t.As, Span: t.Span, Attr: t.Attr}
	case *Raw:
		return &Raw{Text: t.Text, Span: t.Span, Attr: t.Attr}
	case *Var:
		return &Var{Name: t.Name, Span: t.Span, Attr: t.Attr}
	case *If:
		return &If{Cond: Clone(t.Cond), Then: Clone(t.Then), Else: Clone(t.Else), Span: t.Span, Attr: t.Attr}
	case *Case:
		return &Case{Subject: Clone(t.Subject), Clauses: CloneClauses(t.Clauses), Span: t.Span, Attr: t.Attr}
	case *Receive:
		return &Receive{Clauses: CloneClauses(t.Clauses), AfterMs: Clone(t.AfterMs), After: Clone(t.After), Span: t.Span, Attr: t.Attr}
	case *Try:
		return &Try{
			Body:   Clone(t.Body),
			Rescue: CloneClauses(t.Rescue),
			Catch:  CloneClauses(t.Catch),
			Else:   CloneClauses(t.Else),
			After:  Clone(t.After),
			Span:   t.Span,
			Attr:   t.Attr,
		}
	case *For:
		gens := make([]Generator, len(t.Gens))
		for i, g := range t.Gens {
			gens[i] = Generator{Pat: ClonePattern(g.Pat), Src: Clone(g.Src)}
		}
		return &For{Gens: gens, Filters: cloneNodes(t.Filters), Body: Clone(t.Body), Into: Clone(t.Into), Span: t.Span, Attr: t.Attr}
	case *Fn:
		return &Fn{Clauses: CloneClauses(t.Clauses), Span: t.Span, Attr: t.Attr}
	case *BinOp:
		return &BinOp{Op: t.Op, Left: Clone(t.Left), Right: Clone(t.Right), Span: t.Span, Attr: t.Attr}
	case *UnOp:
		return &UnOp{Op: t.Op, Operand: Clone(t.Operand), Span: t.Span, Attr: t.Attr}
	case *Call:
		return &Call{Fun: t.Fun, Args: cloneNodes(t.Args), Span: t.Span, Attr: t.Attr}
	case *RemoteCall:
		return &RemoteCall{Segs: cloneStrings(t.Segs), Fun: t.Fun, Args: cloneNodes(t.Args), Span: t.Span, Attr: t.Attr}
	case *Access:
		return &Access{Target: Clone(t.Target), Key: Clone(t.Key), Span: t.Span, Attr: t.Attr}
	case *Dot:
		return &Dot{Target: Clone(t.Target), Field: t.Field, Span: t.Span, Attr: t.Attr}
	case *Atom:
		return &Atom{Name: t.Name, Span: t.Span, Attr: t.Attr}
	case *IntLit:
		return &IntLit{Value: t.Value, Span: t.Span, Attr: t.Attr}
	case *FloatLit:
		return &FloatLit{Value: t.Value, Span: t.Span, Attr: t.Attr}
	case *StringLit:
		return &StringLit{Value: t.Value, Span: t.Span, Attr: t.Attr}
	case *BoolLit:
		return &BoolLit{Value: t.Value, Span: t.Span, Attr: t.Attr}
	case *NilLit:
		return &NilLit{Span: t.Span, Attr: t.Attr}
	case *Tuple:
		return &Tuple{Elems: cloneNodes(t.Elems), Span: t.Span, Attr: t.Attr}
	case *ListLit:
		return &ListLit{Elems: cloneNodes(t.Elems), Span: t.Span, Attr: t.Attr}
	case *MapLit:
		pairs := make([]Pair, len(t.Pairs))
		for i, p := range t.Pairs {
			pairs[i] = Pair{Key: Clone(p.Key), Value: Clone(p.Value)}
		}
		return &MapLit{Pairs: pairs, Span: t.Span, Attr: t.Attr}
	case *KeywordList:
		pairs := make([]KeywordPair, len(t.Pairs))
		for i, p := range t.Pairs {
			pairs[i] = KeywordPair{Key: p.Key, Value: Clone(p.Value)}
		}
		return &KeywordList{Pairs: pairs, Span: t.Span, Attr: t.Attr}
	case *BinaryLit:
		segs := make([]BinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = BinSegment{Value: Clone(s.Value), Size: Clone(s.Size), Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &BinaryLit{Segs: segs, Span: t.Span, Attr: t.Attr}
	}
	// Unknown shapes cannot be constructed outside this package.
	return n
}

// ClonePattern returns a deep copy of p.
func ClonePattern(p Pattern) Pattern {
	if p == nil {
		return nil
	}
	switch t := p.(type) {
	case *PVar:
		return &PVar{Name: t.Name, Synthetic: t.Synthetic, Span: t.Span}
	case *PTuple:
		return &PTuple{Elems: ClonePatterns(t.Elems), Span: t.Span}
	case *PList:
		return &PList{Elems: ClonePatterns(t.Elems), Span: t.Span}
	case *PCons:
		return &PCons{Heads: ClonePatterns(t.Heads), Tail: ClonePattern(t.Tail), Span: t.Span}
	case *PMap:
		return &PMap{Pairs: clonePMapPairs(t.Pairs), Span: t.Span}
	case *PStruct:
		return &PStruct{Segs: cloneStrings(t.Segs), Pairs: clonePMapPairs(t.Pairs), Span: t.Span}
	case *PLit:
		return &PLit{Value: Clone(t.Value), Span: t.Span}
	case *PAlias:
		return &PAlias{Name: t.Name, Sub: ClonePattern(t.Sub), Span: t.Span}
	case *PPin:
		return &PPin{Name: t.Name, Span: t.Span}
	case *PBin:
		segs := make([]PBinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = PBinSegment{Value: ClonePattern(s.Value), Size: Clone(s.Size), Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &PBin{Segs: segs, Span: t.Span}
	}
	return p
}

// ClonePatterns deep-copies a pattern slice, preserving nil.
func ClonePatterns(ps []Pattern) []Pattern {
	if ps == nil {
		return nil
	}
	out := make([]Pattern, len(ps))
	for i, p := range ps {
		out[i] = ClonePattern(p)
	}
	return out
}

// CloneClauses deep-copies a clause slice, preserving nil.
func CloneClauses(cs []Clause) []Clause {
	if cs == nil {
		return nil
	}
	out := make([]Clause, len(cs))
	for i, c := range cs {
		out[i] = Clause{Pats: ClonePatterns(c.Pats), Guard: Clone(c.Guard), Body: Clone(c.Body)}
	}
	return out
}

func cloneNodes(ns []Node) []Node {
	if ns == nil {
		return nil
	}
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = Clone(n)
	}
	return out
}

func cloneStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}

func clonePMapPairs(ps []PMapPair) []PMapPair {
	if ps == nil {
		return nil
	}
	out := make([]PMapPair, len(ps))
	for i, p := range ps {
		out[i] = PMapPair{Key: Clone(p.Key), Value: ClonePattern(p.Value)}
	}
	return out
}
