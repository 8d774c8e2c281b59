package passes

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/scope"
)

// BinderNames renames the payload binder of a {:tag, x} case clause when the
// clause body plainly wanted a different name: x is never read, and the body
// reads exactly one name that is declared nowhere. With zero candidates
// there is nothing to fix; with two or more the right target is ambiguous
// and the clause is left alone. A rename also never reuses a name already
// declared in an enclosing scope, since that would silently redirect later
// references.
type BinderNames struct{}

func (BinderNames) Name() string { return "binder-names" }

func (BinderNames) Run(root ir.Node, cfg *config.Config) ir.Node {
	return walkCases(root, scope.NewNames(), renameClauseBinders)
}

func renameClauseBinders(c *ir.Case, env *treeset.Set) *ir.Case {
	changed := false
	clauses := make([]ir.Clause, len(c.Clauses))
	for i, cl := range c.Clauses {
		clauses[i] = renameOneClause(cl, env)
		if !clauseEqualShallow(clauses[i], cl) {
			changed = true
		}
	}
	if !changed {
		return c
	}
	return &ir.Case{Subject: c.Subject, Clauses: clauses, Span: c.Span, Attr: c.Attr}
}

func renameOneClause(cl ir.Clause, env *treeset.Set) ir.Clause {
	_, binder, ok := taggedTupleBinder(cl)
	if !ok || binder.Name == "_" {
		return cl
	}
	if scope.ContainsRaw(cl.Body) || scope.ContainsRaw(cl.Guard) {
		return cl // raw text may read the binder in ways the analyzer cannot see
	}

	used := scope.Uses(cl.Body)
	if cl.Guard != nil {
		addSet(used, scope.Uses(cl.Guard))
	}
	if used.Contains(binder.Name) {
		return cl // binder is live under its current name
	}

	// Free names of the clause under everything visible to it; what remains
	// is undeclared.
	bound := cloneEnv(env)
	bound.Add(binder.Name)
	undeclared := scope.FreeUnder(cl.Body, bound)
	if cl.Guard != nil {
		addSet(undeclared, scope.FreeUnder(cl.Guard, bound))
	}

	var candidate string
	count := 0
	for _, v := range undeclared.Values() {
		name := v.(string)
		if !isCandidateName(name) {
			continue
		}
		candidate = name
		count++
	}
	if count != 1 {
		return cl // zero: nothing to repair; several: ambiguous, skip
	}
	if env.Contains(candidate) {
		return cl // would shadow an enclosing binding
	}
	return retagBinder(cl, candidate, false)
}

func clauseEqualShallow(a, b ir.Clause) bool {
	if len(a.Pats) != len(b.Pats) {
		return false
	}
	for i := range a.Pats {
		if a.Pats[i] != b.Pats[i] {
			return false
		}
	}
	return a.Guard == b.Guard && a.Body == b.Body
}
