package passes

import (
	"strings"

	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
)

// BinFold precomputes the byte rendering of fully-constant binary literals
// and stores it in the node metadata, so the printer can emit a plain byte
// string instead of segment syntax. Only the simple constant forms are
// folded: big-endian unsigned integers, 32/64-bit floats and literal strings
// on whole-byte boundaries. Anything else (variables, sub-byte totals,
// custom units, little-endian or signed segments) keeps its segment form.
type BinFold struct{}

func (BinFold) Name() string { return "binary-fold" }

func (BinFold) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, foldBinary)
}

func foldBinary(n ir.Node) ir.Node {
	bin, ok := n.(*ir.BinaryLit)
	if !ok || len(bin.Segs) == 0 {
		return n
	}
	bits := 0
	for _, s := range bin.Segs {
		w, ok := segmentBits(s)
		if !ok {
			return n
		}
		bits += w
	}
	if bits%8 != 0 {
		return n
	}

	b := funbit.NewBuilder()
	for _, s := range bin.Segs {
		switch v := s.Value.(type) {
		case *ir.IntLit:
			size := uint(8)
			if s.Size != nil {
				size = uint(s.Size.(*ir.IntLit).Value)
			}
			funbit.AddInteger(b, v.Value, funbit.WithSize(size))
		case *ir.FloatLit:
			funbit.AddFloat(b, v.Value, funbit.WithSize(uint(s.Size.(*ir.IntLit).Value)))
		case *ir.StringLit:
			funbit.AddBinary(b, []byte(v.Value))
		}
	}
	bs, err := b.Build()
	if err != nil {
		return n // out-of-range value or segment mismatch: keep segment form
	}
	folded := bs.ToBytes()
	if sameBytes(bin.Attr.Folded(), folded) {
		return n
	}
	return &ir.BinaryLit{Segs: bin.Segs, Span: bin.Span, Attr: bin.Attr.WithFolded(folded)}
}

// segmentBits validates one segment for folding and reports its bit width.
func segmentBits(s ir.BinSegment) (int, bool) {
	if s.Signed || s.Little || s.Unit != 0 {
		return 0, false
	}
	switch v := s.Value.(type) {
	case *ir.IntLit:
		if s.Kind != ir.SegInteger {
			return 0, false
		}
		if s.Size == nil {
			return 8, true
		}
		sz, ok := s.Size.(*ir.IntLit)
		if !ok || sz.Value <= 0 || sz.Value > 64 {
			return 0, false
		}
		return int(sz.Value), true
	case *ir.FloatLit:
		if s.Kind != ir.SegFloat {
			return 0, false
		}
		sz, ok := s.Size.(*ir.IntLit)
		if !ok || (sz.Value != 32 && sz.Value != 64) {
			return 0, false
		}
		return int(sz.Value), true
	case *ir.StringLit:
		if s.Kind != ir.SegBinary && s.Kind != ir.SegUTF8 {
			return 0, false
		}
		if s.Size != nil || strings.Contains(v.Value, "#{") {
			return 0, false
		}
		return len(v.Value) * 8, true
	}
	return 0, false
}

func sameBytes(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
