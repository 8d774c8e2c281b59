package scope

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/ir"
)

// Free returns the names n reads without declaring first: what the subtree
// needs from its enclosing scope.
func Free(n ir.Node) *treeset.Set {
	return FreeUnder(n, NewNames())
}

// FreeUnder is Free with an initial set of already-bound names (typically
// the binders of the clause pattern plus everything declared in enclosing
// scopes).
func FreeUnder(n ir.Node, bound *treeset.Set) *treeset.Set {
	acc := NewNames()
	collectFree(n, cloneSet(bound), acc)
	return acc
}

// collectFree may extend bound with binders that become visible to later
// siblings (Bind statements inside a block); callers entering a new lexical
// scope pass a clone.
func collectFree(n ir.Node, bound *treeset.Set, acc *treeset.Set) {
	if n == nil {
		return
	}
	switch t := n.(type) {
	case *ir.Var:
		if !bound.Contains(t.Name) {
			acc.Add(t.Name)
		}
	case *ir.Module:
		for _, s := range t.Body {
			collectFree(s, cloneSet(bound), acc)
		}
	case *ir.FunDef:
		inner := cloneSet(bound)
		for _, p := range t.Params {
			collectPatternFree(p, bound, acc)
			addAll(inner, PatternVars(p))
		}
		collectFree(t.Guard, inner, acc)
		collectFree(t.Body, inner, acc)
	case *ir.Block:
		inner := cloneSet(bound)
		for _, s := range t.Stmts {
			collectFree(s, inner, acc)
			addAll(inner, Declares(s))
		}
	case *ir.Bind:
		collectFree(t.Value, bound, acc)
		collectPatternFree(t.Lhs, bound, acc)
		addAll(bound, PatternVars(t.Lhs))
	case *ir.Attribute:
		collectFree(t.Value, bound, acc)
	case *ir.If:
		collectFree(t.Cond, bound, acc)
		collectFree(t.Then, cloneSet(bound), acc)
		collectFree(t.Else, cloneSet(bound), acc)
	case *ir.Case:
		collectFree(t.Subject, bound, acc)
		for _, c := range t.Clauses {
			collectClauseFree(c, bound, acc)
		}
	case *ir.Receive:
		for _, c := range t.Clauses {
			collectClauseFree(c, bound, acc)
		}
		collectFree(t.AfterMs, bound, acc)
		collectFree(t.After, cloneSet(bound), acc)
	case *ir.Try:
		collectFree(t.Body, cloneSet(bound), acc)
		for _, c := range t.Rescue {
			collectClauseFree(c, bound, acc)
		}
		for _, c := range t.Catch {
			collectClauseFree(c, bound, acc)
		}
		for _, c := range t.Else {
			collectClauseFree(c, bound, acc)
		}
		collectFree(t.After, cloneSet(bound), acc)
	case *ir.For:
		inner := cloneSet(bound)
		for _, g := range t.Gens {
			collectFree(g.Src, inner, acc)
			collectPatternFree(g.Pat, inner, acc)
			addAll(inner, PatternVars(g.Pat))
		}
		for _, f := range t.Filters {
			collectFree(f, inner, acc)
		}
		collectFree(t.Body, inner, acc)
		collectFree(t.Into, bound, acc)
	case *ir.Fn:
		for _, c := range t.Clauses {
			collectClauseFree(c, bound, acc)
		}
	case *ir.BinOp:
		collectFree(t.Left, bound, acc)
		collectFree(t.Right, bound, acc)
	case *ir.UnOp:
		collectFree(t.Operand, bound, acc)
	case *ir.Call:
		for _, a := range t.Args {
			collectFree(a, bound, acc)
		}
	case *ir.RemoteCall:
		for _, a := range t.Args {
			collectFree(a, bound, acc)
		}
	case *ir.Access:
		collectFree(t.Target, bound, acc)
		collectFree(t.Key, bound, acc)
	case *ir.Dot:
		collectFree(t.Target, bound, acc)
	case *ir.StringLit:
		for _, name := range InterpNames(t.Value) {
			if !bound.Contains(name) {
				acc.Add(name)
			}
		}
	case *ir.Raw:
		for _, name := range InterpNames(t.Text) {
			if !bound.Contains(name) {
				acc.Add(name)
			}
		}
	case *ir.Tuple:
		for _, e := range t.Elems {
			collectFree(e, bound, acc)
		}
	case *ir.ListLit:
		for _, e := range t.Elems {
			collectFree(e, bound, acc)
		}
	case *ir.MapLit:
		for _, p := range t.Pairs {
			collectFree(p.Key, bound, acc)
			collectFree(p.Value, bound, acc)
		}
	case *ir.KeywordList:
		for _, p := range t.Pairs {
			collectFree(p.Value, bound, acc)
		}
	case *ir.BinaryLit:
		for _, s := range t.Segs {
			collectFree(s.Value, bound, acc)
			collectFree(s.Size, bound, acc)
		}
	}
}

func collectClauseFree(c ir.Clause, bound *treeset.Set, acc *treeset.Set) {
	for _, p := range c.Pats {
		collectPatternFree(p, bound, acc)
	}
	inner := cloneSet(bound)
	for _, p := range c.Pats {
		addAll(inner, PatternVars(p))
	}
	collectFree(c.Guard, inner, acc)
	collectFree(c.Body, inner, acc)
}

// collectPatternFree reports the read positions of a pattern (pins, key
// expressions, sizes) that are not already bound.
func collectPatternFree(p ir.Pattern, bound *treeset.Set, acc *treeset.Set) {
	if p == nil {
		return
	}
	uses := NewNames()
	collectPatternUses(p, uses)
	for _, v := range uses.Values() {
		if !bound.Contains(v) {
			acc.Add(v)
		}
	}
}

func cloneSet(s *treeset.Set) *treeset.Set {
	out := NewNames()
	out.Add(s.Values()...)
	return out
}

func addAll(dst, src *treeset.Set) {
	dst.Add(src.Values()...)
}
