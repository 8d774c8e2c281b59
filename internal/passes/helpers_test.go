package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/dump"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/pipeline"
)

func v(name string) *ir.Var   { return &ir.Var{Name: name} }
func pv(name string) *ir.PVar { return &ir.PVar{Name: name} }
func atom(name string) *ir.Atom {
	return &ir.Atom{Name: name}
}

func bind(name string, value ir.Node) *ir.Bind {
	return &ir.Bind{Lhs: pv(name), Value: value}
}

// tagged builds the {:tag, binder} clause pattern.
func tagged(tag, binder string, synthetic bool) []ir.Pattern {
	return []ir.Pattern{&ir.PTuple{Elems: []ir.Pattern{
		&ir.PLit{Value: atom(tag)},
		&ir.PVar{Name: binder, Synthetic: synthetic},
	}}}
}

func call(fun string, args ...ir.Node) *ir.Call {
	return &ir.Call{Fun: fun, Args: args}
}

// expectTree fails when got and want render differently. Comparing dumps
// keeps failure output readable.
func expectTree(t *testing.T, got, want ir.Node) {
	t.Helper()
	g, w := dump.Tree(got), dump.Tree(want)
	if g != w {
		t.Errorf("tree mismatch\n--- got ---\n%s--- want ---\n%s", g, w)
	}
}

// expectIdempotent runs the pass twice and fails when the second run still
// changes the tree.
func expectIdempotent(t *testing.T, p pipeline.Pass, root ir.Node, cfg *config.Config) {
	t.Helper()
	once := p.Run(root, cfg)
	twice := p.Run(once, cfg)
	o, tw := dump.Tree(once), dump.Tree(twice)
	if o != tw {
		t.Errorf("%s is not idempotent\n--- first ---\n%s--- second ---\n%s", p.Name(), o, tw)
	}
}
