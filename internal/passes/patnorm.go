package passes

import (
	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
)

// PatNorm normalizes degenerate pattern shapes the front end can emit:
// an alias over a wildcard is just a variable, an alias named `_` is just
// its sub-pattern, and a cons cell with no head elements is its tail.
type PatNorm struct{}

func (PatNorm) Name() string { return "pattern-normalize" }

func (PatNorm) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		switch t := n.(type) {
		case *ir.Bind:
			return &ir.Bind{Lhs: normPattern(t.Lhs), Value: t.Value, Span: t.Span, Attr: t.Attr}
		case *ir.FunDef:
			return &ir.FunDef{Name: t.Name, Params: normPatterns(t.Params), Guard: t.Guard, Body: t.Body, Private: t.Private, Span: t.Span, Attr: t.Attr}
		case *ir.Case:
			return &ir.Case{Subject: t.Subject, Clauses: normClauses(t.Clauses), Span: t.Span, Attr: t.Attr}
		case *ir.Receive:
			return &ir.Receive{Clauses: normClauses(t.Clauses), AfterMs: t.AfterMs, After: t.After, Span: t.Span, Attr: t.Attr}
		case *ir.Try:
			return &ir.Try{Body: t.Body, Rescue: normClauses(t.Rescue), Catch: normClauses(t.Catch), Else: normClauses(t.Else), After: t.After, Span: t.Span, Attr: t.Attr}
		case *ir.Fn:
			return &ir.Fn{Clauses: normClauses(t.Clauses), Span: t.Span, Attr: t.Attr}
		case *ir.For:
			gens := make([]ir.Generator, len(t.Gens))
			for i, g := range t.Gens {
				gens[i] = ir.Generator{Pat: normPattern(g.Pat), Src: g.Src}
			}
			return &ir.For{Gens: gens, Filters: t.Filters, Body: t.Body, Into: t.Into, Span: t.Span, Attr: t.Attr}
		}
		return n
	})
}

func normClauses(cs []ir.Clause) []ir.Clause {
	if cs == nil {
		return nil
	}
	out := make([]ir.Clause, len(cs))
	for i, c := range cs {
		out[i] = ir.Clause{Pats: normPatterns(c.Pats), Guard: c.Guard, Body: c.Body}
	}
	return out
}

func normPatterns(ps []ir.Pattern) []ir.Pattern {
	if ps == nil {
		return nil
	}
	out := make([]ir.Pattern, len(ps))
	for i, p := range ps {
		out[i] = normPattern(p)
	}
	return out
}

func normPattern(p ir.Pattern) ir.Pattern {
	if p == nil {
		return nil
	}
	switch t := p.(type) {
	case *ir.PAlias:
		sub := normPattern(t.Sub)
		if t.Name == "_" {
			return sub
		}
		if v, ok := sub.(*ir.PVar); ok && v.Name == "_" {
			return &ir.PVar{Name: t.Name, Span: t.Span}
		}
		return &ir.PAlias{Name: t.Name, Sub: sub, Span: t.Span}
	case *ir.PCons:
		tail := normPattern(t.Tail)
		if len(t.Heads) == 0 {
			return tail
		}
		return &ir.PCons{Heads: normPatterns(t.Heads), Tail: tail, Span: t.Span}
	case *ir.PTuple:
		return &ir.PTuple{Elems: normPatterns(t.Elems), Span: t.Span}
	case *ir.PList:
		return &ir.PList{Elems: normPatterns(t.Elems), Span: t.Span}
	case *ir.PMap:
		return &ir.PMap{Pairs: normPairList(t.Pairs), Span: t.Span}
	case *ir.PStruct:
		return &ir.PStruct{Segs: t.Segs, Pairs: normPairList(t.Pairs), Span: t.Span}
	case *ir.PBin:
		segs := make([]ir.PBinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = ir.PBinSegment{Value: normPattern(s.Value), Size: s.Size, Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.PBin{Segs: segs, Span: t.Span}
	}
	return p
}

func normPairList(ps []ir.PMapPair) []ir.PMapPair {
	out := make([]ir.PMapPair, len(ps))
	for i, p := range ps {
		out[i] = ir.PMapPair{Key: p.Key, Value: normPattern(p.Value)}
	}
	return out
}
