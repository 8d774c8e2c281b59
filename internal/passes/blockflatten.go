package passes

import (
	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
)

// BlockFlatten splices nested blocks into their parent and unwraps blocks
// that hold a single statement. Later passes rely on this normalization to
// see `bind; use` sequences as adjacent statements; it also runs again near
// the end of the pipeline because the collapse pass can leave single-entry
// blocks behind.
type BlockFlatten struct{}

func (BlockFlatten) Name() string { return "block-flatten" }

func (BlockFlatten) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, flattenOne)
}

func flattenOne(n ir.Node) ir.Node {
	blk, ok := n.(*ir.Block)
	if !ok {
		return n
	}
	stmts := make([]ir.Node, 0, len(blk.Stmts))
	for _, s := range blk.Stmts {
		// Only metadata-free blocks are spliced; a flagged block may mean
		// something to the synthesis layer.
		if inner, ok := s.(*ir.Block); ok && inner.Attr.IsZero() {
			stmts = append(stmts, inner.Stmts...)
			continue
		}
		stmts = append(stmts, s)
	}
	if len(stmts) == 1 && blk.Attr.IsZero() {
		return stmts[0]
	}
	return &ir.Block{Stmts: stmts, Span: blk.Span, Attr: blk.Attr}
}
