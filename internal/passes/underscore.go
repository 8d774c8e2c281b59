package passes

import (
	"strings"

	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
	"github.com/exform/exform/internal/scope"
)

// Underscore prefixes dead binders with "_" so the generated code compiles
// without unused-variable warnings. The analyzer's use-set is the only
// authority consulted: a name read from a nested closure, a guard, a map key
// or a #{...} interpolation slot is live and keeps its binder. Functions
// containing raw pre-rendered text are left entirely alone, since the
// analyzer cannot see into raw text beyond its interpolation slots.
//
// It runs last: every renaming pass before it may change what is live.
type Underscore struct{}

func (Underscore) Name() string { return "underscore-unused" }

func (Underscore) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		fd, ok := n.(*ir.FunDef)
		if !ok {
			return n
		}
		if scope.ContainsRaw(fd.Body) || scope.ContainsRaw(fd.Guard) {
			return n
		}
		// AllReads, not Uses: the rename applies to every binder of a name
		// at once, so a read of a same-named shadow anywhere in the def must
		// keep the name alive.
		used := scope.AllReads(fd)
		rename := func(name string) (string, bool) {
			if name == "_" || strings.HasPrefix(name, "_") {
				return "", false
			}
			if used.Contains(name) {
				return "", false
			}
			return "_" + name, true
		}
		return &ir.FunDef{
			Name:    fd.Name,
			Params:  underscoreParams(fd.Params, rename),
			Guard:   fd.Guard,
			Body:    underscoreBody(fd.Body, rename),
			Private: fd.Private,
			Span:    fd.Span,
			Attr:    fd.Attr,
		}
	})
}

func underscoreParams(ps []ir.Pattern, rename func(string) (string, bool)) []ir.Pattern {
	if ps == nil {
		return nil
	}
	out := make([]ir.Pattern, len(ps))
	for i, p := range ps {
		out[i] = renamePatternVars(p, rename)
	}
	return out
}

// underscoreBody renames dead binders at every pattern position inside the
// body: bindings, case/receive/try clauses, closures, comprehensions.
// Bindings flagged as must-keep are exempt.
func underscoreBody(body ir.Node, rename func(string) (string, bool)) ir.Node {
	return rewriter.Transform(body, func(n ir.Node) ir.Node {
		switch t := n.(type) {
		case *ir.Bind:
			if t.Attr.Has(ir.FlagKeep) {
				return n
			}
			return &ir.Bind{Lhs: renamePatternVars(t.Lhs, rename), Value: t.Value, Span: t.Span, Attr: t.Attr}
		case *ir.Case:
			return &ir.Case{Subject: t.Subject, Clauses: underscoreClauses(t.Clauses, rename), Span: t.Span, Attr: t.Attr}
		case *ir.Receive:
			return &ir.Receive{Clauses: underscoreClauses(t.Clauses, rename), AfterMs: t.AfterMs, After: t.After, Span: t.Span, Attr: t.Attr}
		case *ir.Try:
			return &ir.Try{Body: t.Body, Rescue: underscoreClauses(t.Rescue, rename), Catch: underscoreClauses(t.Catch, rename), Else: underscoreClauses(t.Else, rename), After: t.After, Span: t.Span, Attr: t.Attr}
		case *ir.Fn:
			return &ir.Fn{Clauses: underscoreClauses(t.Clauses, rename), Span: t.Span, Attr: t.Attr}
		case *ir.For:
			gens := make([]ir.Generator, len(t.Gens))
			for i, g := range t.Gens {
				gens[i] = ir.Generator{Pat: renamePatternVars(g.Pat, rename), Src: g.Src}
			}
			return &ir.For{Gens: gens, Filters: t.Filters, Body: t.Body, Into: t.Into, Span: t.Span, Attr: t.Attr}
		}
		return n
	})
}

func underscoreClauses(cs []ir.Clause, rename func(string) (string, bool)) []ir.Clause {
	if cs == nil {
		return nil
	}
	out := make([]ir.Clause, len(cs))
	for i, c := range cs {
		pats := make([]ir.Pattern, len(c.Pats))
		for j, p := range c.Pats {
			pats[j] = renamePatternVars(p, rename)
		}
		out[i] = ir.Clause{Pats: pats, Guard: c.Guard, Body: c.Body}
	}
	return out
}

// unusedIn is used by tests to cross-check the pass against the analyzer.
func unusedIn(fd *ir.FunDef) *treeset.Set {
	used := scope.AllReads(fd)
	declared := scope.AllBinders(fd)
	out := scope.NewNames()
	for _, v := range declared.Values() {
		if !used.Contains(v) {
			out.Add(v)
		}
	}
	return out
}
