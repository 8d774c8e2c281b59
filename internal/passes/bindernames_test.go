package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

// The body reads `user`, which is declared nowhere, while the binder `u` is
// never read: the binder is renamed to match.
func TestBinderNames_RenamesToSingleUndeclaredRead(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: call("render", v("user")),
		}},
	}
	want := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "user", false),
			Body: call("render", v("user")),
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

// Two undeclared reads: the right target is ambiguous, nothing changes.
func TestBinderNames_SkipsOnMultipleCandidates(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: call("render", v("user"), v("account")),
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBinderNames_SkipsWhenBinderIsRead(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: call("render", v("u"), v("user")),
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// The candidate name is declared in an enclosing scope; renaming the binder
// to it would shadow that binding, so the clause is left alone.
func TestBinderNames_NeverShadowsEnclosingBinding(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "run",
		Params: []ir.Pattern{pv("user")},
		Body: &ir.Case{
			Subject: call("fetch"),
			Clauses: []ir.Clause{{
				Pats: tagged("ok", "u", false),
				// `user` resolves to the parameter, not to an undeclared name.
				Body: call("render", v("user")),
			}},
		},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// A name bound earlier in the same block is declared, not a candidate.
func TestBinderNames_BlockBindingIsDeclared(t *testing.T) {
	tree := &ir.FunDef{
		Name: "run",
		Body: &ir.Block{Stmts: []ir.Node{
			bind("conn", call("connect")),
			&ir.Case{
				Subject: call("fetch"),
				Clauses: []ir.Clause{{
					Pats: tagged("ok", "u", false),
					Body: call("close", v("conn")),
				}},
			},
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBinderNames_UnderscoreNamesAreNotCandidates(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: call("render", v("_ignored")),
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBinderNames_WildcardBinderLeftAlone(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "_", false),
			Body: call("render", v("user")),
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBinderNames_GuardReadsCount(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats:  tagged("ok", "u", false),
			Guard: call("is_map", v("u")),
			Body:  call("render", v("user")),
		}},
	}
	// The guard reads u, so the binder is live and stays.
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBinderNames_Idempotent(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: call("render", v("user")),
		}},
	}
	expectIdempotent(t, BinderNames{}, tree, config.Default())
}

// Raw text may read the binder without the analyzer seeing it, so a clause
// containing raw text is never judged dead.
func TestBinderNames_SkipsRawBodies(t *testing.T) {
	tree := &ir.Case{
		Subject: call("fetch"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "u", false),
			Body: &ir.Block{Stmts: []ir.Node{
				&ir.Raw{Text: "IO.inspect(u)"},
				call("render", v("user")),
			}},
		}},
	}
	got := BinderNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}
