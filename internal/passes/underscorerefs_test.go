package passes

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

// A body reads `_state` but only `state` is ever bound: the read is
// normalized back to the bound name.
func TestUnderscoreRefs_NormalizesDanglingUnderscoreRead(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("state")},
		Body:   call("reply", v("_state")),
	}
	want := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("state")},
		Body:   call("reply", v("state")),
	}
	got := UnderscoreRefs{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

// When `_state` itself is bound somewhere in the function, the read is
// legitimate and stays.
func TestUnderscoreRefs_BoundUnderscoreNameStays(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("state")},
		Body: &ir.Block{Stmts: []ir.Node{
			bind("_state", call("init")),
			call("reply", v("_state")),
		}},
	}
	got := UnderscoreRefs{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestUnderscoreRefs_NoBareBindingNoChange(t *testing.T) {
	tree := &ir.FunDef{
		Name: "handle",
		Body: call("reply", v("_orphan")),
	}
	got := UnderscoreRefs{}.Run(tree, config.Default())
	expectTree(t, got, tree)
}

func TestUnderscoreRefs_GuardReadsFixedToo(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("count")},
		Guard:  call("is_integer", v("_count")),
		Body:   v("count"),
	}
	want := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("count")},
		Guard:  call("is_integer", v("count")),
		Body:   v("count"),
	}
	got := UnderscoreRefs{}.Run(tree, config.Default())
	expectTree(t, got, want)
}

func TestUnderscoreRefs_Idempotent(t *testing.T) {
	tree := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("state")},
		Body:   call("reply", v("_state")),
	}
	expectIdempotent(t, UnderscoreRefs{}, tree, config.Default())
}
