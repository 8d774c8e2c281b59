// Package dump renders IR trees as indented text for snapshot tests and the
// driver's debug mode. The output is deterministic and line-oriented; it is
// not the target-language printer.
package dump

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/exform/exform/internal/ir"
)

// Tree returns the debug rendering of n.
func Tree(n ir.Node) string {
	p := &printer{}
	p.node(n)
	return p.buf.String()
}

type printer struct {
	buf    bytes.Buffer
	indent int
}

func (p *printer) line(format string, args ...interface{}) {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *printer) node(n ir.Node) {
	switch t := n.(type) {
	case nil:
		p.line("~nil")
	case *ir.Module:
		p.line("module %s%s", t.Name, metaSuffix(t.Attr))
		p.nested(func() {
			for _, s := range t.Body {
				p.node(s)
			}
		})
	case *ir.FunDef:
		kind := "def"
		if t.Private {
			kind = "defp"
		}
		p.line("%s %s/%d%s", kind, t.Name, len(t.Params), metaSuffix(t.Attr))
		p.nested(func() {
			for _, prm := range t.Params {
				p.line("param %s", PatternString(prm))
			}
			if t.Guard != nil {
				p.line("guard")
				p.nested(func() { p.node(t.Guard) })
			}
			p.node(t.Body)
		})
	case *ir.Block:
		p.line("block%s", metaSuffix(t.Attr))
		p.nested(func() {
			for _, s := range t.Stmts {
				p.node(s)
			}
		})
	case *ir.Bind:
		p.line("bind %s =%s", PatternString(t.Lhs), metaSuffix(t.Attr))
		p.nested(func() { p.node(t.Value) })
	case *ir.Attribute:
		p.line("@%s", t.Name)
		if t.Value != nil {
			p.nested(func() { p.node(t.Value) })
		}
	case *ir.AliasDirective:
		if t.As != "" {
			p.line("alias %s, as: %s", strings.Join(t.Segs, "."), t.As)
		} else {
			p.line("alias %s", strings.Join(t.Segs, "."))
		}
	case *ir.Raw:
		p.line("raw %s", strconv.Quote(t.Text))
	case *ir.Var:
		p.line("var %s", t.Name)
	case *ir.If:
		p.line("if")
		p.nested(func() {
			p.node(t.Cond)
			p.node(t.Then)
			if t.Else != nil {
				p.line("else")
				p.nested(func() { p.node(t.Else) })
			}
		})
	case *ir.Case:
		p.line("case")
		p.nested(func() {
			p.node(t.Subject)
			p.clauses("clause", t.Clauses)
		})
	case *ir.Receive:
		p.line("receive")
		p.nested(func() {
			p.clauses("clause", t.Clauses)
			if t.AfterMs != nil {
				p.line("after")
				p.nested(func() {
					p.node(t.AfterMs)
					p.node(t.After)
				})
			}
		})
	case *ir.Try:
		p.line("try")
		p.nested(func() {
			p.node(t.Body)
			p.clauses("rescue", t.Rescue)
			p.clauses("catch", t.Catch)
			p.clauses("else", t.Else)
			if t.After != nil {
				p.line("after")
				p.nested(func() { p.node(t.After) })
			}
		})
	case *ir.For:
		p.line("for")
		p.nested(func() {
			for _, g := range t.Gens {
				p.line("gen %s <-", PatternString(g.Pat))
				p.nested(func() { p.node(g.Src) })
			}
			for _, f := range t.Filters {
				p.line("filter")
				p.nested(func() { p.node(f) })
			}
			if t.Into != nil {
				p.line("into")
				p.nested(func() { p.node(t.Into) })
			}
			p.node(t.Body)
		})
	case *ir.Fn:
		p.line("fn")
		p.nested(func() { p.clauses("clause", t.Clauses) })
	case *ir.BinOp:
		p.line("binop %s", t.Op)
		p.nested(func() {
			p.node(t.Left)
			p.node(t.Right)
		})
	case *ir.UnOp:
		p.line("unop %s", t.Op)
		p.nested(func() { p.node(t.Operand) })
	case *ir.Call:
		p.line("call %s/%d", t.Fun, len(t.Args))
		p.nested(func() {
			for _, a := range t.Args {
				p.node(a)
			}
		})
	case *ir.RemoteCall:
		p.line("call %s.%s/%d", strings.Join(t.Segs, "."), t.Fun, len(t.Args))
		p.nested(func() {
			for _, a := range t.Args {
				p.node(a)
			}
		})
	case *ir.Access:
		p.line("access")
		p.nested(func() {
			p.node(t.Target)
			p.node(t.Key)
		})
	case *ir.Dot:
		p.line("dot .%s", t.Field)
		p.nested(func() { p.node(t.Target) })
	case *ir.Atom:
		p.line("atom :%s", t.Name)
	case *ir.IntLit:
		p.line("int %d", t.Value)
	case *ir.FloatLit:
		p.line("float %g", t.Value)
	case *ir.StringLit:
		p.line("string %s", strconv.Quote(t.Value))
	case *ir.BoolLit:
		p.line("bool %v", t.Value)
	case *ir.NilLit:
		p.line("nil")
	case *ir.Tuple:
		p.line("tuple/%d", len(t.Elems))
		p.nested(func() {
			for _, e := range t.Elems {
				p.node(e)
			}
		})
	case *ir.ListLit:
		p.line("list/%d", len(t.Elems))
		p.nested(func() {
			for _, e := range t.Elems {
				p.node(e)
			}
		})
	case *ir.MapLit:
		p.line("map/%d", len(t.Pairs))
		p.nested(func() {
			for _, pr := range t.Pairs {
				p.line("pair")
				p.nested(func() {
					p.node(pr.Key)
					p.node(pr.Value)
				})
			}
		})
	case *ir.KeywordList:
		p.line("kwlist/%d", len(t.Pairs))
		p.nested(func() {
			for _, pr := range t.Pairs {
				p.line("%s:", pr.Key)
				p.nested(func() { p.node(pr.Value) })
			}
		})
	case *ir.BinaryLit:
		p.line("binary/%d%s", len(t.Segs), metaSuffix(t.Attr))
		p.nested(func() {
			for _, s := range t.Segs {
				p.line("seg %s", s.Kind)
				p.nested(func() {
					p.node(s.Value)
					if s.Size != nil {
						p.line("size")
						p.nested(func() { p.node(s.Size) })
					}
				})
			}
		})
	default:
		p.line("<unknown %T>", n)
	}
}

func (p *printer) clauses(label string, cs []ir.Clause) {
	for _, c := range cs {
		pats := make([]string, len(c.Pats))
		for i, pt := range c.Pats {
			pats[i] = PatternString(pt)
		}
		p.line("%s %s ->", label, strings.Join(pats, ", "))
		p.nested(func() {
			if c.Guard != nil {
				p.line("when")
				p.nested(func() { p.node(c.Guard) })
			}
			p.node(c.Body)
		})
	}
}

// PatternString renders a pattern on one line, close to source syntax.
func PatternString(pt ir.Pattern) string {
	switch t := pt.(type) {
	case nil:
		return "~nil"
	case *ir.PVar:
		if t.Synthetic {
			return t.Name + "!"
		}
		return t.Name
	case *ir.PTuple:
		return "{" + joinPatterns(t.Elems) + "}"
	case *ir.PList:
		return "[" + joinPatterns(t.Elems) + "]"
	case *ir.PCons:
		return "[" + joinPatterns(t.Heads) + " | " + PatternString(t.Tail) + "]"
	case *ir.PMap:
		return "%{" + joinPairs(t.Pairs) + "}"
	case *ir.PStruct:
		return "%" + strings.Join(t.Segs, ".") + "{" + joinPairs(t.Pairs) + "}"
	case *ir.PLit:
		return litString(t.Value)
	case *ir.PAlias:
		return t.Name + " = " + PatternString(t.Sub)
	case *ir.PPin:
		return "^" + t.Name
	case *ir.PBin:
		parts := make([]string, len(t.Segs))
		for i, s := range t.Segs {
			parts[i] = PatternString(s.Value) + "::" + s.Kind.String()
		}
		return "<<" + strings.Join(parts, ", ") + ">>"
	}
	return fmt.Sprintf("<unknown %T>", pt)
}

func joinPatterns(ps []ir.Pattern) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = PatternString(p)
	}
	return strings.Join(parts, ", ")
}

func joinPairs(ps []ir.PMapPair) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = litString(p.Key) + " => " + PatternString(p.Value)
	}
	return strings.Join(parts, ", ")
}

func litString(n ir.Node) string {
	switch t := n.(type) {
	case *ir.Atom:
		return ":" + t.Name
	case *ir.IntLit:
		return strconv.FormatInt(t.Value, 10)
	case *ir.FloatLit:
		return strconv.FormatFloat(t.Value, 'g', -1, 64)
	case *ir.StringLit:
		return strconv.Quote(t.Value)
	case *ir.BoolLit:
		return strconv.FormatBool(t.Value)
	case *ir.NilLit:
		return "nil"
	case *ir.Var:
		return t.Name
	}
	return fmt.Sprintf("<expr %T>", n)
}

func metaSuffix(m ir.Meta) string {
	var parts []string
	if m.Has(ir.FlagSchema) {
		parts = append(parts, "schema")
	}
	if m.Has(ir.FlagEndpoint) {
		parts = append(parts, "endpoint")
	}
	if m.Has(ir.FlagHandlerResult) {
		parts = append(parts, "handler")
	}
	if m.Has(ir.FlagKeep) {
		parts = append(parts, "keep")
	}
	if f := m.Folded(); f != nil {
		parts = append(parts, "folded="+hex.EncodeToString(f))
	}
	if len(parts) == 0 {
		return ""
	}
	return " [" + strings.Join(parts, ",") + "]"
}
