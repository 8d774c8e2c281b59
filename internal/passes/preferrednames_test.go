package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

// The front end emitted a gensym binder in an {:ok, g} clause; the config
// table maps :ok to "result".
func TestPreferredNames_RenamesSyntheticBinder(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: call("render", v("g42")),
		}},
	}
	want := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "result", false),
			Body: call("render", v("result")),
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestPreferredNames_NonSyntheticBinderUntouched(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", false),
			Body: call("render", v("g42")),
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// Lookups are exact: a tag outside the table is not renamed by any fuzzy
// match.
func TestPreferredNames_UnknownTagUntouched(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("partial", "g42", true),
			Body: call("render", v("g42")),
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestPreferredNames_ShadowCheckBlocksRename(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "run",
		Params: []ir.Pattern{pv("result")},
		Body: &ir.Case{
			Subject: call("go"),
			Clauses: []ir.Clause{{
				Pats: tagged("ok", "g42", true),
				Body: call("render", v("g42"), v("result")),
			}},
		},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// The preferred name is already read inside the clause for something else:
// renaming would capture that reference.
func TestPreferredNames_ClauseUseBlocksRename(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: call("render", v("g42"), v("result")),
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestPreferredNames_RebindInsideBlocksRename(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("error", "g9", true),
			Body: &ir.Block{Stmts: []ir.Node{
				bind("g9", call("normalize", v("g9"))),
				call("log", v("g9")),
			}},
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestPreferredNames_EmptyTableIsANoop(t *testing.T) {
	cfg := config.Default()
	cfg.PreferredNames = nil
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: call("render", v("g42")),
		}},
	}
	got := PreferredNames{}.Run(tree, cfg)
	expectTree(t, got, tree)
}

func TestPreferredNames_Idempotent(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: call("render", v("g42")),
		}},
	}
	expectIdempotent(t, PreferredNames{}, tree, config.Default())
}

// The binder is read from an interpolation slot, which the rename cannot
// rewrite: the clause must stay as it is.
func TestPreferredNames_SkipsBinderReadViaInterpolation(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: &ir.StringLit{Value: "id: #{g42}"},
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestPreferredNames_SkipsRawBodies(t *testing.T) {
	tree := &ir.Case{
		Subject: call("run"),
		Clauses: []ir.Clause{{
			Pats: tagged("ok", "g42", true),
			Body: &ir.Block{Stmts: []ir.Node{
				&ir.Raw{Text: "IO.inspect(g42)"},
				call("render", v("g42")),
			}},
		}},
	}
	got := PreferredNames{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}
