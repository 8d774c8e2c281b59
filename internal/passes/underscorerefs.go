package passes

import (
	"strings"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
	"github.com/exform/exform/internal/scope"
)

// UnderscoreRefs repairs references left inconsistent by earlier rewrites: a
// body reading `_name` where no `_name` is bound anywhere in the function but
// a plain `name` is. The read is normalized back to `name`. It runs before
// any liveness judgement so the underscoring pass sees honest use-sets.
type UnderscoreRefs struct{}

func (UnderscoreRefs) Name() string { return "underscore-refs" }

func (UnderscoreRefs) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		fd, ok := n.(*ir.FunDef)
		if !ok {
			return n
		}
		declared := scope.AllBinders(fd)
		fix := func(c ir.Node) ir.Node {
			v, ok := c.(*ir.Var)
			if !ok || !strings.HasPrefix(v.Name, "_") {
				return c
			}
			bare := strings.TrimPrefix(v.Name, "_")
			if bare == "" || declared.Contains(v.Name) || !declared.Contains(bare) {
				return c
			}
			return &ir.Var{Name: bare, Span: v.Span, Attr: v.Attr}
		}
		return &ir.FunDef{
			Name:    fd.Name,
			Params:  fd.Params,
			Guard:   rewriter.Transform(fd.Guard, fix),
			Body:    rewriter.Transform(fd.Body, fix),
			Private: fd.Private,
			Span:    fd.Span,
			Attr:    fd.Attr,
		}
	})
}
