package scope

import (
	"reflect"
	"testing"

	"github.com/exform/exform/internal/ir"
)

func v(name string) *ir.Var            { return &ir.Var{Name: name} }
func pv(name string) *ir.PVar          { return &ir.PVar{Name: name} }
func bind(name string, n ir.Node) *ir.Bind {
	return &ir.Bind{Lhs: pv(name), Value: n}
}

func TestUses_OperandsAndArgs(t *testing.T) {
	n := &ir.Block{Stmts: []ir.Node{
		&ir.BinOp{Op: "+", Left: v("a"), Right: v("b")},
		&ir.Call{Fun: "send", Args: []ir.Node{v("c")}},
		&ir.RemoteCall{Segs: []string{"Repo"}, Fun: "get", Args: []ir.Node{v("d")}},
		&ir.Access{Target: v("m"), Key: v("k")},
	}}
	got := Names(Uses(n))
	want := []string{"a", "b", "c", "d", "k", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses = %v, want %v", got, want)
	}
}

func TestUses_BindLhsIsNotARead(t *testing.T) {
	n := bind("x", v("y"))
	set := Uses(n)
	if set.Contains("x") {
		t.Error("binder x reported as a use")
	}
	if !set.Contains("y") {
		t.Error("value read y missing")
	}
}

func TestUses_PinIsARead(t *testing.T) {
	n := &ir.Bind{Lhs: &ir.PTuple{Elems: []ir.Pattern{&ir.PPin{Name: "expected"}, pv("got")}}, Value: v("pair")}
	set := Uses(n)
	if !set.Contains("expected") {
		t.Error("pinned variable not reported as a use")
	}
	if set.Contains("got") {
		t.Error("binder got reported as a use")
	}
}

func TestUses_InterpolationSlot(t *testing.T) {
	n := &ir.StringLit{Value: "hello #{name}, you have #{count} items"}
	got := Names(Uses(n))
	want := []string{"count", "name"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses = %v, want %v", got, want)
	}
}

// A closure contributes only its free variables: its own parameters shadow
// the enclosing binding, so a read of the parameter is not a read of the
// outer name.
func TestUses_ClosureShadowsOwnParams(t *testing.T) {
	fn := &ir.Fn{Clauses: []ir.Clause{{
		Pats: []ir.Pattern{pv("x")},
		Body: &ir.BinOp{Op: "+", Left: v("x"), Right: v("acc")},
	}}}
	got := Names(Uses(fn))
	want := []string{"acc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses = %v, want %v", got, want)
	}

	// AllReads keeps the shadowed read.
	got = Names(AllReads(fn))
	want = []string{"acc", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllReads = %v, want %v", got, want)
	}
}

func TestUses_ComprehensionShadowsGenerators(t *testing.T) {
	loop := &ir.For{
		Gens:    []ir.Generator{{Pat: pv("item"), Src: v("items")}},
		Filters: []ir.Node{&ir.BinOp{Op: ">", Left: v("item"), Right: v("min")}},
		Body:    &ir.Call{Fun: "render", Args: []ir.Node{v("item")}},
	}
	got := Names(Uses(loop))
	want := []string{"items", "min"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses = %v, want %v", got, want)
	}
}

// Case clause binders leak into the surrounding scope in the target
// language, so clause bodies are counted without shadowing subtraction.
func TestUses_CaseClausesCountedConservatively(t *testing.T) {
	c := &ir.Case{
		Subject: v("subject"),
		Clauses: []ir.Clause{{
			Pats: []ir.Pattern{&ir.PTuple{Elems: []ir.Pattern{&ir.PLit{Value: &ir.Atom{Name: "ok"}}, pv("val")}}},
			Body: v("val"),
		}},
	}
	got := Names(Uses(c))
	want := []string{"subject", "val"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Uses = %v, want %v", got, want)
	}
}

func TestFree_BlockBindingsAreNotFree(t *testing.T) {
	blk := &ir.Block{Stmts: []ir.Node{
		bind("x", v("input")),
		&ir.BinOp{Op: "+", Left: v("x"), Right: v("y")},
	}}
	got := Names(Free(blk))
	want := []string{"input", "y"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Free = %v, want %v", got, want)
	}
}

func TestFree_UseBeforeBindIsFree(t *testing.T) {
	blk := &ir.Block{Stmts: []ir.Node{
		&ir.Call{Fun: "log", Args: []ir.Node{v("x")}},
		bind("x", &ir.IntLit{Value: 1}),
	}}
	if !Free(blk).Contains("x") {
		t.Error("read before binding should be free")
	}
}

func TestFreeUnder_InitialBound(t *testing.T) {
	body := &ir.BinOp{Op: "+", Left: v("a"), Right: v("b")}
	bound := NewNames()
	bound.Add("a")
	got := Names(FreeUnder(body, bound))
	want := []string{"b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeUnder = %v, want %v", got, want)
	}
}

func TestFree_ClausePatternsBindTheirBody(t *testing.T) {
	c := &ir.Case{
		Subject: v("s"),
		Clauses: []ir.Clause{{
			Pats: []ir.Pattern{pv("x")},
			Body: &ir.BinOp{Op: "+", Left: v("x"), Right: v("z")},
		}},
	}
	got := Names(Free(c))
	want := []string{"s", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Free = %v, want %v", got, want)
	}
}

func TestPatternVars(t *testing.T) {
	p := &ir.PTuple{Elems: []ir.Pattern{
		&ir.PLit{Value: &ir.Atom{Name: "ok"}},
		&ir.PAlias{Name: "whole", Sub: &ir.PMap{Pairs: []ir.PMapPair{
			{Key: &ir.Atom{Name: "id"}, Value: pv("id")},
		}}},
		&ir.PPin{Name: "pinned"},
		pv("_"),
	}}
	got := Names(PatternVars(p))
	want := []string{"id", "whole"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PatternVars = %v, want %v", got, want)
	}
}

func TestDeclares_OnlyBindStatements(t *testing.T) {
	if got := Names(Declares(bind("x", v("y")))); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("Declares(bind) = %v, want [x]", got)
	}
	c := &ir.Case{Subject: v("s"), Clauses: []ir.Clause{{Pats: []ir.Pattern{pv("leaky")}, Body: v("leaky")}}}
	if Declares(c).Size() != 0 {
		t.Error("case clause binders must not count as block declarations")
	}
}

func TestAllBinders(t *testing.T) {
	fd := &ir.FunDef{
		Name:   "handle",
		Params: []ir.Pattern{pv("msg"), pv("state")},
		Body: &ir.Block{Stmts: []ir.Node{
			bind("x", &ir.IntLit{Value: 1}),
			&ir.Fn{Clauses: []ir.Clause{{Pats: []ir.Pattern{pv("inner")}, Body: v("inner")}}},
		}},
	}
	got := Names(AllBinders(fd))
	want := []string{"inner", "msg", "state", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AllBinders = %v, want %v", got, want)
	}
}

func TestContainsRaw(t *testing.T) {
	without := &ir.Block{Stmts: []ir.Node{bind("x", v("y"))}}
	if ContainsRaw(without) {
		t.Error("no raw node present")
	}
	with := &ir.Block{Stmts: []ir.Node{
		bind("x", v("y")),
		&ir.If{Cond: v("c"), Then: &ir.Raw{Text: "IO.puts(x)"}},
	}}
	if !ContainsRaw(with) {
		t.Error("nested raw node missed")
	}
}

func TestNames_Sorted(t *testing.T) {
	s := NewNames()
	s.Add("zeta", "alpha", "mid")
	got := Names(s)
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}
