package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

func remote(fun string, segs ...string) *ir.RemoteCall {
	return &ir.RemoteCall{Segs: segs, Fun: fun}
}

func TestAliasInject_RepeatedQualifiedCalls(t *testing.T) {
	tree := &ir.Module{
		Name: "Todo.Items",
		Body: []ir.Node{
			&ir.FunDef{Name: "list", Body: remote("all", "Todo", "Repo")},
			&ir.FunDef{Name: "get", Body: remote("get", "Todo", "Repo")},
		},
	}
	want := &ir.Module{
		Name: "Todo.Items",
		Body: []ir.Node{
			&ir.AliasDirective{Segs: []string{"Todo", "Repo"}},
			&ir.FunDef{Name: "list", Body: remote("all", "Repo")},
			&ir.FunDef{Name: "get", Body: remote("get", "Repo")},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestAliasInject_BelowThresholdUntouched(t *testing.T) {
	tree := &ir.Module{
		Name: "Todo.Items",
		Body: []ir.Node{
			&ir.FunDef{Name: "list", Body: remote("all", "Todo", "Repo")},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// Two candidate paths share a last segment: aliasing either would be
// ambiguous, so neither is aliased.
func TestAliasInject_CollidingShortNames(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.FunDef{Name: "a", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Foo", "Repo"),
				remote("two", "Foo", "Repo"),
			}}},
			&ir.FunDef{Name: "b", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Bar", "Repo"),
				remote("two", "Bar", "Repo"),
			}}},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// An existing alias binds the short name to a different path: the candidate
// is dropped.
func TestAliasInject_ExistingAliasToOtherPath(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.AliasDirective{Segs: []string{"Legacy", "Repo"}},
			&ir.FunDef{Name: "a", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Todo", "Repo"),
				remote("two", "Todo", "Repo"),
			}}},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

// The directive already exists for the same path: call sites shorten but no
// duplicate directive is added.
func TestAliasInject_ExistingAliasSamePath(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.AliasDirective{Segs: []string{"Todo", "Repo"}},
			&ir.FunDef{Name: "a", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Todo", "Repo"),
				remote("two", "Todo", "Repo"),
			}}},
		},
	}
	want := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.AliasDirective{Segs: []string{"Todo", "Repo"}},
			&ir.FunDef{Name: "a", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Repo"),
				remote("two", "Repo"),
			}}},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

// Single-segment calls already using the short name block the alias.
func TestAliasInject_ShortNameAlreadyInUse(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.FunDef{Name: "a", Body: &ir.Block{Stmts: []ir.Node{
				remote("one", "Todo", "Repo"),
				remote("two", "Todo", "Repo"),
				remote("local", "Repo"),
			}}},
		},
	}
	got := AliasInject{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestAliasInject_DirectiveGoesAfterPrologue(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.Attribute{Name: "moduledoc", Value: &ir.StringLit{Value: "doc"}},
			&ir.FunDef{Name: "a", Body: remote("one", "Todo", "Repo")},
			&ir.FunDef{Name: "b", Body: remote("two", "Todo", "Repo")},
		},
	}
	got := AliasInject{}.Run(tree, config.Default()).(*ir.Module)
	if _, ok := got.Body[0].(*ir.Attribute); !ok {
		t.Fatalf("body[0] = %T, want the moduledoc attribute first", got.Body[0])
	}
	if _, ok := got.Body[1].(*ir.AliasDirective); !ok {
		t.Fatalf("body[1] = %T, want the injected alias directive", got.Body[1])
	}
}

func TestAliasInject_ConfigurableThreshold(t *testing.T) {
	cfg := config.Default()
	cfg.AliasMinUses = 3
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.FunDef{Name: "a", Body: remote("one", "Todo", "Repo")},
			&ir.FunDef{Name: "b", Body: remote("two", "Todo", "Repo")},
		},
	}
	got := AliasInject{}.Run(tree, cfg)
	expectTree(t, got, tree)
}

func TestAliasInject_Idempotent(t *testing.T) {
	tree := &ir.Module{
		Name: "App",
		Body: []ir.Node{
			&ir.FunDef{Name: "a", Body: remote("one", "Todo", "Repo")},
			&ir.FunDef{Name: "b", Body: remote("two", "Todo", "Repo")},
		},
	}
	expectIdempotent(t, AliasInject{}, tree, config.Default())
}
