package passes

import (
	"sort"
	"strings"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/ir"
	"github.com/exform/exform/internal/rewriter"
)

// AliasInject shortens repeated fully-qualified calls: a module called at
// least AliasMinUses times by its full dotted path gets an alias directive
// at module top, and those call sites keep only the last segment. A
// candidate is dropped whenever its short name is claimed by anything else:
// another candidate with the same last segment, an existing alias bound to a
// different path, or unqualified calls that already use the name.
type AliasInject struct{}

func (AliasInject) Name() string { return "alias-inject" }

func (AliasInject) Run(root ir.Node, cfg *config.Config) ir.Node {
	return rewriter.Transform(root, func(n ir.Node) ir.Node {
		mod, ok := n.(*ir.Module)
		if !ok {
			return n
		}
		return injectAliases(mod, cfg.AliasMinUses)
	})
}

func injectAliases(mod *ir.Module, minUses int) ir.Node {
	counts := map[string]int{}
	shortHeads := map[string]bool{}
	existing := map[string]string{} // alias name -> dotted path

	var visit func(n ir.Node) ir.Node
	visit = func(n ir.Node) ir.Node {
		switch t := n.(type) {
		case *ir.RemoteCall:
			if len(t.Segs) >= 2 {
				counts[strings.Join(t.Segs, ".")]++
			} else if len(t.Segs) == 1 {
				shortHeads[t.Segs[0]] = true
			}
		case *ir.AliasDirective:
			existing[aliasName(t)] = strings.Join(t.Segs, ".")
		}
		return rewriter.Rebuild(n, visit)
	}
	visit(mod)

	paths := make([]string, 0, len(counts))
	for p, c := range counts {
		if c >= minUses {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	// Resolve short names; any collision disqualifies every claimant.
	claimed := map[string]int{}
	for _, p := range paths {
		claimed[lastSegment(p)]++
	}
	rewriteTo := map[string]string{} // dotted path -> short name
	var newDirectives []string
	for _, p := range paths {
		short := lastSegment(p)
		if claimed[short] > 1 {
			continue
		}
		if prior, ok := existing[short]; ok {
			if prior == p {
				rewriteTo[p] = short // directive already present
			}
			continue
		}
		if shortHeads[short] {
			continue
		}
		rewriteTo[p] = short
		newDirectives = append(newDirectives, p)
	}
	if len(rewriteTo) == 0 {
		return mod
	}

	shorten := func(n ir.Node) ir.Node {
		rc, ok := n.(*ir.RemoteCall)
		if !ok || len(rc.Segs) < 2 {
			return n
		}
		short, ok := rewriteTo[strings.Join(rc.Segs, ".")]
		if !ok {
			return n
		}
		return &ir.RemoteCall{Segs: []string{short}, Fun: rc.Fun, Args: rc.Args, Span: rc.Span, Attr: rc.Attr}
	}

	body := make([]ir.Node, 0, len(mod.Body)+len(newDirectives))
	// New directives go after the leading attribute/alias prologue.
	cut := 0
	for cut < len(mod.Body) {
		switch mod.Body[cut].(type) {
		case *ir.Attribute, *ir.AliasDirective:
			cut++
			continue
		}
		break
	}
	body = append(body, mod.Body[:cut]...)
	for _, p := range newDirectives {
		body = append(body, &ir.AliasDirective{Segs: strings.Split(p, ".")})
	}
	for _, s := range mod.Body[cut:] {
		body = append(body, rewriter.Transform(s, shorten))
	}
	return &ir.Module{Name: mod.Name, Body: body, Span: mod.Span, Attr: mod.Attr}
}

func aliasName(d *ir.AliasDirective) string {
	if d.As != "" {
		return d.As
	}
	if len(d.Segs) == 0 {
		return ""
	}
	return d.Segs[len(d.Segs)-1]
}

func lastSegment(path string) string {
	i := strings.LastIndex(path, ".")
	return path[i+1:]
}
