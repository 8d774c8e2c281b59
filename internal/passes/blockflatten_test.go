package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

func TestBlockFlatten_SplicesNestedBlocks(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{
		call("a"),
		&ir.Block{Stmts: []ir.Node{call("b"), call("c")}},
		call("d"),
	}}
	want := &ir.Block{Stmts: []ir.Node{call("a"), call("b"), call("c"), call("d")}}
	got := BlockFlatten{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestBlockFlatten_UnwrapsSingleStatement(t *testing.T) {
	tree := &ir.If{
		Cond: v("flag"),
		Then: &ir.Block{Stmts: []ir.Node{call("only")}},
	}
	want := &ir.If{Cond: v("flag"), Then: call("only")}
	got := BlockFlatten{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

// A block carrying metadata may mean something to the synthesis layer and is
// neither spliced nor unwrapped.
func TestBlockFlatten_FlaggedBlockPreserved(t *testing.T) {
	flagged := &ir.Block{
		Stmts: []ir.Node{call("only")},
		Attr:  ir.Meta{}.WithFlag(ir.FlagSchema),
	}
	tree := &ir.Block{Stmts: []ir.Node{call("a"), flagged}}
	got := BlockFlatten{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestBlockFlatten_DeeplyNested(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{
		&ir.Block{Stmts: []ir.Node{
			&ir.Block{Stmts: []ir.Node{call("x")}},
			call("y"),
		}},
	}}
	// Bottom-up: the innermost single-entry block unwraps, then the middle
	// splices, then the outer splices.
	want := &ir.Block{Stmts: []ir.Node{call("x"), call("y")}}
	got := BlockFlatten{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestBlockFlatten_Idempotent(t *testing.T) {
	tree := &ir.Block{Stmts: []ir.Node{
		&ir.Block{Stmts: []ir.Node{call("b"), &ir.Block{Stmts: []ir.Node{call("c")}}}},
	}}
	expectIdempotent(t, BlockFlatten{}, tree, config.Default())
}
