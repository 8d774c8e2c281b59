// Package passes contains the rewrite rules run by the pipeline. Every pass
// follows the same shape: a structural predicate over node variants, the
// scope analyzer for liveness questions, a narrow deterministic decision
// rule, and "return the input unchanged" for everything else. Passes are
// idempotent and never raise; a malformed shape fails the structural guard
// and is skipped.
package passes

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
	"github.com/exform/exform/internal/scope"
)

// caseEditor rewrites one case expression given the names declared in its
// enclosing scope. It must return its input when it does not apply.
type caseEditor func(c *ir.Case, env *treeset.Set) *ir.Case

// walkCases runs edit over every case expression in n, threading the set of
// names declared in enclosing scopes (parameters, earlier bindings, clause
// binders). Children are rewritten before edit sees the node.
func walkCases(n ir.Node, env *treeset.Set, edit caseEditor) ir.Node {
	if n == nil {
		return nil
	}
	step := func(c ir.Node) ir.Node { return walkCases(c, env, edit) }
	switch t := n.(type) {
	case *ir.Module:
		body := make([]ir.Node, len(t.Body))
		for i, s := range t.Body {
			body[i] = walkCases(s, cloneEnv(env), edit)
		}
		return &ir.Module{Name: t.Name, Body: body, Span: t.Span, Attr: t.Attr}
	case *ir.FunDef:
		inner := cloneEnv(env)
		for _, p := range t.Params {
			addSet(inner, scope.PatternVars(p))
		}
		return &ir.FunDef{
			Name:    t.Name,
			Params:  t.Params,
			Guard:   walkCases(t.Guard, inner, edit),
			Body:    walkCases(t.Body, inner, edit),
			Private: t.Private,
			Span:    t.Span,
			Attr:    t.Attr,
		}
	case *ir.Block:
		inner := cloneEnv(env)
		stmts := make([]ir.Node, len(t.Stmts))
		for i, s := range t.Stmts {
			stmts[i] = walkCases(s, inner, edit)
			addSet(inner, scope.Declares(stmts[i]))
		}
		return &ir.Block{Stmts: stmts, Span: t.Span, Attr: t.Attr}
	case *ir.Case:
		out := &ir.Case{
			Subject: walkCases(t.Subject, env, edit),
			Clauses: walkClauses(t.Clauses, env, edit),
			Span:    t.Span,
			Attr:    t.Attr,
		}
		return edit(out, env)
	case *ir.Receive:
		return &ir.Receive{
			Clauses: walkClauses(t.Clauses, env, edit),
			AfterMs: walkCases(t.AfterMs, env, edit),
			After:   walkCases(t.After, cloneEnv(env), edit),
			Span:    t.Span,
			Attr:    t.Attr,
		}
	case *ir.Try:
		return &ir.Try{
			Body:   walkCases(t.Body, cloneEnv(env), edit),
			Rescue: walkClauses(t.Rescue, env, edit),
			Catch:  walkClauses(t.Catch, env, edit),
			Else:   walkClauses(t.Else, env, edit),
			After:  walkCases(t.After, cloneEnv(env), edit),
			Span:   t.Span,
			Attr:   t.Attr,
		}
	case *ir.For:
		inner := cloneEnv(env)
		gens := make([]ir.Generator, len(t.Gens))
		for i, g := range t.Gens {
			gens[i] = ir.Generator{Pat: g.Pat, Src: walkCases(g.Src, inner, edit)}
			addSet(inner, scope.PatternVars(g.Pat))
		}
		filters := make([]ir.Node, len(t.Filters))
		for i, f := range t.Filters {
			filters[i] = walkCases(f, inner, edit)
		}
		return &ir.For{Gens: gens, Filters: filters, Body: walkCases(t.Body, inner, edit), Into: walkCases(t.Into, env, edit), Span: t.Span, Attr: t.Attr}
	case *ir.Fn:
		return &ir.Fn{Clauses: walkClauses(t.Clauses, env, edit), Span: t.Span, Attr: t.Attr}
	}
	return rewriter.Rebuild(n, step)
}

func walkClauses(cs []ir.Clause, env *treeset.Set, edit caseEditor) []ir.Clause {
	if cs == nil {
		return nil
	}
	out := make([]ir.Clause, len(cs))
	for i, c := range cs {
		inner := cloneEnv(env)
		for _, p := range c.Pats {
			addSet(inner, scope.PatternVars(p))
		}
		out[i] = ir.Clause{
			Pats:  c.Pats,
			Guard: walkCases(c.Guard, inner, edit),
			Body:  walkCases(c.Body, inner, edit),
		}
	}
	return out
}

// taggedTupleBinder matches the canonical shape {:tag, binder}: a single
// two-element tuple pattern whose first element is a literal atom and whose
// second is a plain variable. Anything else fails the guard.
func taggedTupleBinder(c ir.Clause) (string, *ir.PVar, bool) {
	if len(c.Pats) != 1 {
		return "", nil, false
	}
	tup, ok := c.Pats[0].(*ir.PTuple)
	if !ok || len(tup.Elems) != 2 {
		return "", nil, false
	}
	lit, ok := tup.Elems[0].(*ir.PLit)
	if !ok {
		return "", nil, false
	}
	atom, ok := lit.Value.(*ir.Atom)
	if !ok {
		return "", nil, false
	}
	pv, ok := tup.Elems[1].(*ir.PVar)
	if !ok {
		return "", nil, false
	}
	return atom.Name, pv, true
}

// retagBinder rebuilds the clause with its tuple binder renamed.
func retagBinder(c ir.Clause, name string, synthetic bool) ir.Clause {
	tup := c.Pats[0].(*ir.PTuple)
	old := tup.Elems[1].(*ir.PVar)
	return ir.Clause{
		Pats: []ir.Pattern{&ir.PTuple{
			Elems: []ir.Pattern{tup.Elems[0], &ir.PVar{Name: name, Synthetic: synthetic, Span: old.Span}},
			Span:  tup.Span,
		}},
		Guard: c.Guard,
		Body:  c.Body,
	}
}

// renameVarRefs rewrites every read of old to new. Callers must have checked
// that old is not rebound anywhere inside n, or the rename would cross a
// shadow boundary.
func renameVarRefs(n ir.Node, old, new string) ir.Node {
	return rewriter.Transform(n, func(c ir.Node) ir.Node {
		if v, ok := c.(*ir.Var); ok && v.Name == old {
			return &ir.Var{Name: new, Span: v.Span, Attr: v.Attr}
		}
		return c
	})
}

// renamePatternVars applies rename to every binder in p. Pins are reads and
// stay untouched.
func renamePatternVars(p ir.Pattern, rename func(string) (string, bool)) ir.Pattern {
	if p == nil {
		return nil
	}
	switch t := p.(type) {
	case *ir.PVar:
		if next, ok := rename(t.Name); ok {
			return &ir.PVar{Name: next, Synthetic: t.Synthetic, Span: t.Span}
		}
		return t
	case *ir.PTuple:
		return &ir.PTuple{Elems: renameAll(t.Elems, rename), Span: t.Span}
	case *ir.PList:
		return &ir.PList{Elems: renameAll(t.Elems, rename), Span: t.Span}
	case *ir.PCons:
		return &ir.PCons{Heads: renameAll(t.Heads, rename), Tail: renamePatternVars(t.Tail, rename), Span: t.Span}
	case *ir.PMap:
		return &ir.PMap{Pairs: renamePairs(t.Pairs, rename), Span: t.Span}
	case *ir.PStruct:
		return &ir.PStruct{Segs: t.Segs, Pairs: renamePairs(t.Pairs, rename), Span: t.Span}
	case *ir.PAlias:
		name := t.Name
		if next, ok := rename(t.Name); ok {
			name = next
		}
		return &ir.PAlias{Name: name, Sub: renamePatternVars(t.Sub, rename), Span: t.Span}
	case *ir.PBin:
		segs := make([]ir.PBinSegment, len(t.Segs))
		for i, s := range t.Segs {
			segs[i] = ir.PBinSegment{Value: renamePatternVars(s.Value, rename), Size: s.Size, Kind: s.Kind, Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.PBin{Segs: segs, Span: t.Span}
	}
	// PLit, PPin: no binders.
	return p
}

func renameAll(ps []ir.Pattern, rename func(string) (string, bool)) []ir.Pattern {
	out := make([]ir.Pattern, len(ps))
	for i, p := range ps {
		out[i] = renamePatternVars(p, rename)
	}
	return out
}

func renamePairs(ps []ir.PMapPair, rename func(string) (string, bool)) []ir.PMapPair {
	out := make([]ir.PMapPair, len(ps))
	for i, p := range ps {
		out[i] = ir.PMapPair{Key: p.Key, Value: renamePatternVars(p.Value, rename)}
	}
	return out
}

// isCandidateName reports whether a free name is a plausible rename target:
// an ordinary lowercase variable, not an intentionally-unused one.
func isCandidateName(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") {
		return false
	}
	c := name[0]
	return c >= 'a' && c <= 'z'
}

func cloneEnv(s *treeset.Set) *treeset.Set {
	out := scope.NewNames()
	out.Add(s.Values()...)
	return out
}

func addSet(dst, src *treeset.Set) {
	dst.Add(src.Values()...)
}
