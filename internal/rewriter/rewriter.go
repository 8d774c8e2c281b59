// Package rewriter is the generic tree-walking engine every pass is built
// on. A pass supplies a rewrite function; the engine owns the recursion, so
// a fix to the walk (a new node shape, a missed child) benefits every pass
// at once. Passes must never hand-roll their own full-tree walks.
package rewriter

import (
	"github.com/exform/exform/internal/ir"
)

// Func is a rewrite function. It must be total and side-effect-free: shapes
// it does not care about fall through to "return the input unchanged". The
// engine never treats an unhandled shape as an error.
type Func func(ir.Node) ir.Node

// Transform rewrites n bottom-up: children first (recursively, with the same
// f), then f on the reconstructed node. Expression positions embedded in
// patterns (pinned map keys, binary segment sizes, literal matches) are
// walked too. Shapes without declared children still get f applied directly,
// so passes can target leaf nodes without engine changes.
func Transform(n ir.Node, f Func) ir.Node {
	if n == nil {
		return nil
	}
	step := func(c ir.Node) ir.Node { return Transform(c, f) }
	return f(mapChildren(n, step))
}

// Rebuild applies f to the immediate declared children of n only, returning
// the reconstructed node. It is the single-level entry point for passes that
// need control over recursion order, e.g. threading a scope accumulator
// through clause bodies one branch at a time. f is not applied to n itself.
func Rebuild(n ir.Node, f Func) ir.Node {
	if n == nil {
		return nil
	}
	return mapChildren(n, f)
}

// TransformPattern rewrites the expression positions embedded in a pattern
// with f, recursing into sub-patterns. The pattern structure itself is
// preserved; only Node-typed children change.
func TransformPattern(p ir.Pattern, f Func) ir.Pattern {
	step := func(c ir.Node) ir.Node { return Transform(c, f) }
	return mapPattern(p, step)
}

// mapChildren reconstructs n with step applied to every declared child.
// Nodes with no children pass through unchanged; the caller decides whether
// to apply its rewrite function on top.
func mapChildren(n ir.Node, step Func) ir.Node {
	switch t := n.(type) {
	case *ir.Module:
		return &ir.Module{Name: t.Name, Body: mapNodes(t.Body, step), Span: t.Span, Attr: t.Attr}
	case *ir.FunDef:
		return &ir.FunDef{
			Name:    t.Name,
			Params:  mapPatterns(t.Params, step),
			Guard:   stepNil(t.Guard, step),
			Body:    stepNil(t.Body, step),
			Private: t.Private,
			Span:    t.Span,
			Attr:    t.Attr,
		}
	case *ir.Block:
		return &ir.Block{Stmts: mapNodes(t.Stmts, step), Span: t.Span, Attr: t.Attr}
	case *ir.Bind:
		return &ir.Bind{Lhs: mapPattern(t.Lhs, step), Value: stepNil(t.Value, step), Span: t.Span, Attr: t.Attr}
	case *ir.Attribute:
		return &ir.Attribute{Name: t.Name, Value: stepNil(t.Value, step), Span: t.Span, Attr: t.Attr}
	case *ir.If:
		return &ir.If{Cond: stepNil(t.Cond, step), Then: stepNil(t.Then, step), Else: stepNil(t.Else, step), Span: t.Span, Attr: t.Attr}
	case *ir.Case:
		return &ir.Case{Subject: stepNil(t.Subject, step), Clauses: mapClauses(t.Clauses, step), Span: t.Span, Attr: t.Attr}
	case *ir.Receive:
		return &ir.Receive{Clauses: mapClauses(t.Clauses, step), AfterMs: stepNil(t.AfterMs, step), After: stepNil(t.After, step), Span: t.Span, Attr: t.Attr}
	case *ir.Try:
		return &ir.Try{
			Body:   stepNil(t.Body, step),
			Rescue: mapClauses(t.Rescue, step),
			Catch:  mapClauses(t.Catch, step),
			Else:   mapClauses(t.Else, step),
			After:  stepNil(t.After, step),
			Span:   t.Span,
			Attr:   t.Attr,
		}
	case *ir.For:
		gens := make([]ir.Generator, len(t.Gens))
		for i, g := range t.Gens {
			gens[i] = ir.Generator{Pat: mapPattern(g.Pat, step), Src: stepNil(g.Src, step)}
		}
		return &ir.For{Gens: gens, Filters: mapNodes(t.Filters, step), Body: stepNil(t.Body, step), Into: stepNil(t.Into, step), Span: t.Span, Attr: t.Attr}
	case *ir.Fn:
		return &ir.Fn{Clauses: mapClauses(t.Clauses, step), Span: t.Span, Attr: t.Attr}
	case *ir.BinOp:
		return &ir.BinOp{Op: t.Op, Left: stepNil(t.Left, step), Right: stepNil(t.Right, step), Span: t.Span, Attr: t.Attr}
	case *ir.UnOp:
		return &ir.UnOp{Op: t.Op, Operand: stepNil(t.Operand, step), Span: t.Span, Attr: t.Attr}
	case *ir.Call:
		return &ir.Call{Fun: t.Fun, Args: mapNodes(t.Args, step), Span: t.Span, Attr: t.Attr}
	case *ir.RemoteCall:
		return &ir.RemoteCall{Segs: t.Segs, Fun: t.Fun, Args: mapNodes(t.Args, step), Span: t.Span, Attr: t.Attr}
	case *ir.Access:
		return &ir.Access{Target: stepNil(t.Target, step), Key: stepNil(t.Key, step), Span: t.Span, Attr: t.Attr}
	case *ir.Dot:
		return &ir.Dot{Target: stepNil(t.Target, step), Field: t.Field, Span: t.Span, Attr: t.Attr}
	case *ir.Tuple:
		return &ir.Tuple{Elems: mapNodes(t.Elems, step), Span: t.Span, Attr: t.Attr}
	case *ir.ListLit:
		return &ir.ListLit{Elems: mapNodes(t.Elems, step), Span: t.Span, Attr: t.Attr}
	case *ir.MapLit:
		pairs := make([]ir.Pair, len(t.Pairs))
		for i, p := range t.Pairs {
			pairs[i] = ir.Pair{Key: stepNil(p.Key, step), Value: stepNil(p.Value, step)}
		}
		return &ir.MapLit{Pairs: pairs, Span: t.Span, Attr: t.Attr}
	case *ir.KeywordList:
		pairs := make([]ir.KeywordPair, len(t.Pairs))
		for i, p := range t.Pairs {
			pairs[i] = ir.KeywordPair{Key: p.Key, Value: stepNil(p.Value, step)}
		}
		return &ir.KeywordList{Pairs: pairs, Span: t.Span, Attr: t.Attr}
	case *ir.BinaryLit:
		segs := make([]ir.BinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = ir.BinSegment{Value: stepNil(s.Value, step), Size: stepNil(s.Size, step), Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.BinaryLit{Segs: segs, Span: t.Span, Attr: t.Attr}
	}
	// Leaf shapes (Var, literals, Raw, AliasDirective) and anything the
	// engine does not recognize: nothing to recurse into.
	return n
}

func mapClauses(cs []ir.Clause, step Func) []ir.Clause {
	if cs == nil {
		return nil
	}
	out := make([]ir.Clause, len(cs))
	for i, c := range cs {
		out[i] = ir.Clause{
			Pats:  mapPatterns(c.Pats, step),
			Guard: stepNil(c.Guard, step),
			Body:  stepNil(c.Body, step),
		}
	}
	return out
}

func mapPatterns(ps []ir.Pattern, step Func) []ir.Pattern {
	if ps == nil {
		return nil
	}
	out := make([]ir.Pattern, len(ps))
	for i, p := range ps {
		out[i] = mapPattern(p, step)
	}
	return out
}

func mapPattern(p ir.Pattern, step Func) ir.Pattern {
	if p == nil {
		return nil
	}
	switch t := p.(type) {
	case *ir.PTuple:
		return &ir.PTuple{Elems: mapPatterns(t.Elems, step), Span: t.Span}
	case *ir.PList:
		return &ir.PList{Elems: mapPatterns(t.Elems, step), Span: t.Span}
	case *ir.PCons:
		return &ir.PCons{Heads: mapPatterns(t.Heads, step), Tail: mapPattern(t.Tail, step), Span: t.Span}
	case *ir.PMap:
		return &ir.PMap{Pairs: mapPMapPairs(t.Pairs, step), Span: t.Span}
	case *ir.PStruct:
		return &ir.PStruct{Segs: t.Segs, Pairs: mapPMapPairs(t.Pairs, step), Span: t.Span}
	case *ir.PLit:
		return &ir.PLit{Value: stepNil(t.Value, step), Span: t.Span}
	case *ir.PAlias:
		return &ir.PAlias{Name: t.Name, Sub: mapPattern(t.Sub, step), Span: t.Span}
	case *ir.PBin:
		segs := make([]ir.PBinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = ir.PBinSegment{Value: mapPattern(s.Value, step), Size: stepNil(s.Size, step), Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.PBin{Segs: segs, Span: t.Span}
	}
	// PVar and PPin carry no expression children.
	return p
}

func mapPMapPairs(ps []ir.PMapPair, step Func) []ir.PMapPair {
	if ps == nil {
		return nil
	}
	out := make([]ir.PMapPair, len(ps))
	for i, p := range ps {
		out[i] = ir.PMapPair{Key: stepNil(p.Key, step), Value: mapPattern(p.Value, step)}
	}
	return out
}

func mapNodes(ns []ir.Node, step Func) []ir.Node {
	if ns == nil {
		return nil
	}
	out := make([]ir.Node, len(ns))
	for i, n := range ns {
		out[i] = stepNil(n, step)
	}
	return out
}

// Optional children stay nil rather than being handed to step.
func stepNil(n ir.Node, step Func) ir.Node {
	if n == nil {
		return nil
	}
	return step(n)
}
