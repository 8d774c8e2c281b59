package pipeline

import (
	"testing"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
)

// stubPass appends a marker statement to the root block so tests can observe
// execution and ordering.
type stubPass struct {
	name string
}

func (p stubPass) Name() string { return p.name }

func (p stubPass) Run(root ir.Node, cfg *config.Config) ir.Node {
	blk := root.(*ir.Block)
	stmts := append(append([]ir.Node{}, blk.Stmts...), &ir.Atom{Name: p.name})
	return &ir.Block{Stmts: stmts}
}

func markers(n ir.Node) []string {
	var out []string
	for _, s := range n.(*ir.Block).Stmts {
		out = append(out, s.(*ir.Atom).Name)
	}
	return out
}

func TestRun_AppliesPassesInOrder(t *testing.T) {
	p := New(config.Default(), stubPass{"first"}, stubPass{"second"}, stubPass{"third"})
	res := p.Run(&ir.Block{})
	got := markers(res.Root)
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("markers = %v, want %v", got, want)
		}
	}
}

func TestRun_DisabledPassSkipped(t *testing.T) {
	cfg := config.Default()
	cfg.DisabledPasses = []string{"second"}
	p := New(cfg, stubPass{"first"}, stubPass{"second"}, stubPass{"third"})
	res := p.Run(&ir.Block{})
	for _, m := range markers(res.Root) {
		if m == "second" {
			t.Fatal("disabled pass still ran")
		}
	}
}

func TestRun_DebugNotes(t *testing.T) {
	cfg := config.Default()
	cfg.Debug = true
	cfg.DisabledPasses = []string{"second"}
	p := New(cfg, stubPass{"first"}, stubPass{"second"})
	res := p.Run(&ir.Block{})

	if res.RunID == "" {
		t.Error("debug run has no run id")
	}
	if len(res.Notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(res.Notes))
	}
	if res.Notes[0].Pass != "first" || res.Notes[0].Message != "rewrote tree" {
		t.Errorf("note[0] = %+v", res.Notes[0])
	}
	if res.Notes[1].Pass != "second" || res.Notes[1].Message != "disabled" {
		t.Errorf("note[1] = %+v", res.Notes[1])
	}
}

func TestRun_NoDebugNoNotes(t *testing.T) {
	p := New(config.Default(), stubPass{"first"})
	res := p.Run(&ir.Block{})
	if res.RunID != "" {
		t.Error("run id set outside debug mode")
	}
	if len(res.Notes) != 0 {
		t.Errorf("got %d notes, want 0", len(res.Notes))
	}
}
