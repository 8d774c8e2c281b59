package passes

import (
	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
)

// ResultWrap normalizes the return shape of functions the front end flagged
// as framework result handlers: their final expression must be a tagged
// tuple. A bare final value gets wrapped as {:<result_tag>, value}; a final
// expression that already is a tagged tuple is left alone, and branching
// final expressions (case/if/try) are skipped rather than rewritten
// per-branch, since a partial wrap would be worse than none.
type ResultWrap struct{}

func (ResultWrap) Name() string { return "result-wrap" }

func (ResultWrap) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		fd, ok := n.(*ir.FunDef)
		if !ok || !fd.Attr.Has(ir.FlagHandlerResult) {
			return n
		}
		body, changed := wrapFinal(fd.Body, cfg.ResultTag)
		if !changed {
			return n
		}
		return &ir.FunDef{Name: fd.Name, Params: fd.Params, Guard: fd.Guard, Body: body, Private: fd.Private, Span: fd.Span, Attr: fd.Attr}
	})
}

func wrapFinal(body ir.Node, tag string) (ir.Node, bool) {
	switch t := body.(type) {
	case nil:
		return body, false
	case *ir.Block:
		if len(t.Stmts) == 0 {
			return body, false
		}
		last, changed := wrapFinal(t.Stmts[len(t.Stmts)-1], tag)
		if !changed {
			return body, false
		}
		stmts := append(append([]ir.Node{}, t.Stmts[:len(t.Stmts)-1]...), last)
		return &ir.Block{Stmts: stmts, Span: t.Span, Attr: t.Attr}, true
	case *ir.Tuple:
		if len(t.Elems) >= 1 {
			if _, ok := t.Elems[0].(*ir.Atom); ok {
				return body, false // already tagged
			}
		}
		return wrap(t, tag), true
	case *ir.Case, *ir.If, *ir.Try, *ir.Receive:
		return body, false // branching result: ambiguous, skip
	case *ir.Bind, *ir.Raw:
		return body, false
	default:
		return wrap(body, tag), true
	}
}

func wrap(n ir.Node, tag string) ir.Node {
	return &ir.Tuple{
		Elems: []ir.Node{&ir.Atom{Name: tag, Span: n.Pos()}, n},
		Span:  n.Pos(),
	}
}
