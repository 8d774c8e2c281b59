package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

func TestPatNorm_AliasOverWildcardBecomesVar(t *testing.T) {
	tree := &ir.Bind{
		Lhs:   &ir.PAlias{Name: "whole", Sub: pv("_")},
		Value: call("fetch"),
	}
	want := &ir.Bind{Lhs: pv("whole"), Value: call("fetch")}
	got := PatNorm{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestPatNorm_WildcardAliasDropsToSub(t *testing.T) {
	tree := &ir.Bind{
		Lhs:   &ir.PAlias{Name: "_", Sub: &ir.PTuple{Elems: []ir.Pattern{pv("a"), pv("b")}}},
		Value: call("fetch"),
	}
	want := &ir.Bind{
		Lhs:   &ir.PTuple{Elems: []ir.Pattern{pv("a"), pv("b")}},
		Value: call("fetch"),
	}
	got := PatNorm{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestPatNorm_HeadlessConsIsItsTail(t *testing.T) {
	tree := &ir.Bind{
		Lhs:   &ir.PCons{Heads: nil, Tail: pv("rest")},
		Value: v("list"),
	}
	want := &ir.Bind{Lhs: pv("rest"), Value: v("list")}
	got := PatNorm{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestPatNorm_NormalConsUntouched(t *testing.T) {
	tree := &ir.Bind{
		Lhs:   &ir.PCons{Heads: []ir.Pattern{pv("h")}, Tail: pv("t")},
		Value: v("list"),
	}
	got := PatNorm{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestPatNorm_RecursesIntoClausePatterns(t *testing.T) {
	tree := &ir.Case{
		Subject: v("x"),
		Clauses: []ir.Clause{{
			Pats: []ir.Pattern{&ir.PTuple{Elems: []ir.Pattern{
				&ir.PAlias{Name: "pair", Sub: pv("_")},
			}}},
			Body: v("pair"),
		}},
	}
	want := &ir.Case{
		Subject: v("x"),
		Clauses: []ir.Clause{{
			Pats: []ir.Pattern{&ir.PTuple{Elems: []ir.Pattern{pv("pair")}}},
			Body: v("pair"),
		}},
	}
	got := PatNorm{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestPatNorm_Idempotent(t *testing.T) {
	tree := &ir.Bind{
		Lhs: &ir.PAlias{Name: "_", Sub: &ir.PAlias{Name: "x", Sub: pv("_")}},
		Value: call("fetch"),
	}
	expectIdempotent(t, PatNorm{}, tree, config.Default())
}
