package passes

import (
	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
	"github.com/exform/exform/internal/scope"
)

// CollapseBind removes dead temporaries of the shape
//
//	x = f(...)
//	x
//
// at the tail of a block, rewriting the pair into f(...) directly. The
// binder must be a plain variable, not flagged as must-keep, and unused by
// every other statement of the block; otherwise the pair stays.
type CollapseBind struct{}

func (CollapseBind) Name() string { return "collapse-bind" }

func (CollapseBind) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		blk, ok := n.(*ir.Block)
		if !ok || len(blk.Stmts) < 2 {
			return n
		}
		last := len(blk.Stmts) - 1
		bind, ok := blk.Stmts[last-1].(*ir.Bind)
		if !ok || bind.Attr.Has(ir.FlagKeep) {
			return n
		}
		pv, ok := bind.Lhs.(*ir.PVar)
		if !ok || pv.Name == "_" {
			return n
		}
		ref, ok := blk.Stmts[last].(*ir.Var)
		if !ok || ref.Name != pv.Name {
			return n
		}
		// The temporary must not be read by any earlier statement (a
		// closure defined above could capture a previous binding of the
		// same name, which this bind shadows).
		for _, s := range blk.Stmts[:last-1] {
			if scope.Uses(s).Contains(pv.Name) {
				return n
			}
		}
		stmts := append(append([]ir.Node{}, blk.Stmts[:last-1]...), bind.Value)
		return &ir.Block{Stmts: stmts, Span: blk.Span, Attr: blk.Attr}
	})
}
