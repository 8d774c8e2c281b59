package passes

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/scope"
)

// PreferredNames replaces front-end gensym binders in {:tag, g123} case
// clauses with the canonical name for the tag, looked up in the closed
// config table (exact match only; there is deliberately no substring or
// prefix heuristic). Only binders the front end marked synthetic are
// touched, and only when the preferred name collides with nothing in scope.
type PreferredNames struct{}

func (PreferredNames) Name() string { return "preferred-names" }

func (PreferredNames) Run(root ir.Node, cfg *config.Config) ir.Node {
	if len(cfg.PreferredNames) == 0 {
		return root
	}
	table := cfg.PreferredNames
	edit := func(c *ir.Case, env *treeset.Set) *ir.Case {
		changed := false
		clauses := make([]ir.Clause, len(c.Clauses))
		for i, cl := range c.Clauses {
			clauses[i] = preferOneClause(cl, env, table)
			if !clauseEqualShallow(clauses[i], cl) {
				changed = true
			}
		}
		if !changed {
			return c
		}
		return &ir.Case{Subject: c.Subject, Clauses: clauses, Span: c.Span, Attr: c.Attr}
	}
	return walkCases(root, scope.NewNames(), edit)
}

func preferOneClause(cl ir.Clause, env *treeset.Set, table map[string]string) ir.Clause {
	tag, binder, ok := taggedTupleBinder(cl)
	if !ok || !binder.Synthetic || binder.Name == "_" {
		return cl
	}
	pref, ok := table[tag]
	if !ok || pref == binder.Name || !isCandidateName(pref) {
		return cl
	}
	if env.Contains(pref) {
		return cl // would shadow an enclosing binding
	}
	if scope.ContainsRaw(cl.Body) || scope.ContainsRaw(cl.Guard) {
		return cl // raw text may read the binder in ways the analyzer cannot see
	}
	// The preferred name must be fresh inside the clause too, or the rename
	// would capture an unrelated reference or collide with a nested binder.
	used := scope.Uses(cl.Body)
	if cl.Guard != nil {
		addSet(used, scope.Uses(cl.Guard))
	}
	if used.Contains(pref) || scope.AllBinders(cl.Body).Contains(pref) {
		return cl
	}
	// Interpolation slots read the binder textually; renameVarRefs cannot
	// reach them, so the old name must not be live there.
	interp := scope.InterpReads(cl.Body)
	if cl.Guard != nil {
		addSet(interp, scope.InterpReads(cl.Guard))
	}
	if interp.Contains(binder.Name) {
		return cl
	}
	if scope.AllBinders(cl.Body).Contains(binder.Name) {
		return cl // rebound inside: renaming reads would cross a shadow
	}
	out := retagBinder(cl, pref, false)
	out.Body = renameVarRefs(out.Body, binder.Name, pref)
	if out.Guard != nil {
		out.Guard = renameVarRefs(out.Guard, binder.Name, pref)
	}
	return out
}
