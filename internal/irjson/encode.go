package irjson

import (
	"fmt"

	"github.com/exform/exform/internal/ir"
)

func encodeNode(n ir.Node) (*jnode, error) {
	if n == nil {
		return nil, nil
	}
	switch t := n.(type) {
	case *ir.Module:
		body, err := encodeNodes(t.Body)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "module", Name: t.Name, Body: body, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.FunDef:
		params, err := encodePatterns(t.Params)
		if err != nil {
			return nil, err
		}
		guard, err := encodeNode(t.Guard)
		if err != nil {
			return nil, err
		}
		body, err := encodeNode(t.Body)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "def", Name: t.Name, Params: params, Guard: guard, Block: body, Private: t.Private, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Block:
		stmts, err := encodeNodes(t.Stmts)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "block", Stmts: stmts, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Bind:
		lhs, err := encodePattern(t.Lhs)
		if err != nil {
			return nil, err
		}
		value, err := encodeNode(t.Value)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "bind", Lhs: lhs, Value: value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Attribute:
		value, err := encodeNode(t.Value)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "attribute", Name: t.Name, Value: value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.AliasDirective:
		return &jnode{Kind: "alias", Segs: t.Segs, As: t.As, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Raw:
		return &jnode{Kind: "raw", Text: t.Text, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Var:
		return &jnode{Kind: "var", Name: t.Name, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.If:
		cond, err := encodeNode(t.Cond)
		if err != nil {
			return nil, err
		}
		then, err := encodeNode(t.Then)
		if err != nil {
			return nil, err
		}
		els, err := encodeNode(t.Else)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "if", Cond: cond, Then: then, Else: els, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Case:
		subject, err := encodeNode(t.Subject)
		if err != nil {
			return nil, err
		}
		clauses, err := encodeClauses(t.Clauses)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "case", Subject: subject, Clauses: clauses, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Receive:
		clauses, err := encodeClauses(t.Clauses)
		if err != nil {
			return nil, err
		}
		afterMs, err := encodeNode(t.AfterMs)
		if err != nil {
			return nil, err
		}
		after, err := encodeNode(t.After)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "receive", Clauses: clauses, AfterMs: afterMs, After: after, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Try:
		body, err := encodeNode(t.Body)
		if err != nil {
			return nil, err
		}
		rescue, err := encodeClauses(t.Rescue)
		if err != nil {
			return nil, err
		}
		catch, err := encodeClauses(t.Catch)
		if err != nil {
			return nil, err
		}
		elseOf, err := encodeClauses(t.Else)
		if err != nil {
			return nil, err
		}
		after, err := encodeNode(t.After)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "try", Block: body, Rescue: rescue, Catch: catch, ElseOf: elseOf, After: after, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.For:
		gens := make([]jgen, len(t.Gens))
		for i, g := range t.Gens {
			pat, err := encodePattern(g.Pat)
			if err != nil {
				return nil, err
			}
			src, err := encodeNode(g.Src)
			if err != nil {
				return nil, err
			}
			gens[i] = jgen{Pat: *pat, Src: *src}
		}
		filters, err := encodeNodes(t.Filters)
		if err != nil {
			return nil, err
		}
		body, err := encodeNode(t.Body)
		if err != nil {
			return nil, err
		}
		into, err := encodeNode(t.Into)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "for", Gens: gens, Filters: filters, Block: body, Into: into, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Fn:
		clauses, err := encodeClauses(t.Clauses)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "fn", Clauses: clauses, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.BinOp:
		left, err := encodeNode(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := encodeNode(t.Right)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "binop", Op: t.Op, Left: left, Right: right, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.UnOp:
		operand, err := encodeNode(t.Operand)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "unop", Op: t.Op, Operand: operand, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Call:
		args, err := encodeNodes(t.Args)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "call", Fun: t.Fun, Args: args, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.RemoteCall:
		args, err := encodeNodes(t.Args)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "remote", Segs: t.Segs, Fun: t.Fun, Args: args, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Access:
		target, err := encodeNode(t.Target)
		if err != nil {
			return nil, err
		}
		key, err := encodeNode(t.Key)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "access", Target: target, Key: key, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Dot:
		target, err := encodeNode(t.Target)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "dot", Target: target, Field: t.Field, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Atom:
		return &jnode{Kind: "atom", Name: t.Name, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.IntLit:
		return &jnode{Kind: "int", Int: t.Value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.FloatLit:
		return &jnode{Kind: "float", Float: t.Value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.StringLit:
		return &jnode{Kind: "string", Str: t.Value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.BoolLit:
		return &jnode{Kind: "bool", Bool: t.Value, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.NilLit:
		return &jnode{Kind: "nil", Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.Tuple:
		elems, err := encodeNodes(t.Elems)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "tuple", Elems: elems, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.ListLit:
		elems, err := encodeNodes(t.Elems)
		if err != nil {
			return nil, err
		}
		return &jnode{Kind: "list", Elems: elems, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.MapLit:
		pairs := make([]jpair, len(t.Pairs))
		for i, p := range t.Pairs {
			key, err := encodeNode(p.Key)
			if err != nil {
				return nil, err
			}
			value, err := encodeNode(p.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = jpair{Key: *key, Value: *value}
		}
		return &jnode{Kind: "map", Pairs: pairs, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.KeywordList:
		pairs := make([]jkwpair, len(t.Pairs))
		for i, p := range t.Pairs {
			value, err := encodeNode(p.Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = jkwpair{Key: p.Key, Value: *value}
		}
		return &jnode{Kind: "kwlist", KwPairs: pairs, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	case *ir.BinaryLit:
		segs := make([]jbinseg, len(t.Segs))
		for i, s := range t.Segs {
			value, err := encodeNode(s.Value)
			if err != nil {
				return nil, err
			}
			size, err := encodeNode(s.Size)
			if err != nil {
				return nil, err
			}
			segs[i] = jbinseg{Value: value, Size: size, Kind: int(s.Kind), Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &jnode{Kind: "binary", BinSegs: segs, Pos: encodePos(t.Span), Meta: encodeMeta(t.Attr)}, nil
	}
	return nil, fmt.Errorf("irjson: unknown node %T", n)
}

func encodeNodes(ns []ir.Node) ([]jnode, error) {
	if ns == nil {
		return nil, nil
	}
	out := make([]jnode, len(ns))
	for i, n := range ns {
		jn, err := encodeNode(n)
		if err != nil {
			return nil, err
		}
		out[i] = *jn
	}
	return out, nil
}

func encodeClauses(cs []ir.Clause) ([]jclause, error) {
	if cs == nil {
		return nil, nil
	}
	out := make([]jclause, len(cs))
	for i, c := range cs {
		pats, err := encodePatterns(c.Pats)
		if err != nil {
			return nil, err
		}
		guard, err := encodeNode(c.Guard)
		if err != nil {
			return nil, err
		}
		body, err := encodeNode(c.Body)
		if err != nil {
			return nil, err
		}
		out[i] = jclause{Pats: pats, Guard: guard, Body: body}
	}
	return out, nil
}

func encodePattern(p ir.Pattern) (*jpattern, error) {
	if p == nil {
		return nil, nil
	}
	switch t := p.(type) {
	case *ir.PVar:
		return &jpattern{Kind: "pvar", Name: t.Name, Synthetic: t.Synthetic, Pos: encodePos(t.Span)}, nil
	case *ir.PTuple:
		elems, err := encodePatterns(t.Elems)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "ptuple", Elems: elems, Pos: encodePos(t.Span)}, nil
	case *ir.PList:
		elems, err := encodePatterns(t.Elems)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "plist", Elems: elems, Pos: encodePos(t.Span)}, nil
	case *ir.PCons:
		heads, err := encodePatterns(t.Heads)
		if err != nil {
			return nil, err
		}
		tail, err := encodePattern(t.Tail)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "pcons", Heads: heads, Tail: tail, Pos: encodePos(t.Span)}, nil
	case *ir.PMap:
		pairs, err := encodePPairs(t.Pairs)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "pmap", Pairs: pairs, Pos: encodePos(t.Span)}, nil
	case *ir.PStruct:
		pairs, err := encodePPairs(t.Pairs)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "pstruct", Segs: t.Segs, Pairs: pairs, Pos: encodePos(t.Span)}, nil
	case *ir.PLit:
		value, err := encodeNode(t.Value)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "plit", Value: value, Pos: encodePos(t.Span)}, nil
	case *ir.PAlias:
		sub, err := encodePattern(t.Sub)
		if err != nil {
			return nil, err
		}
		return &jpattern{Kind: "palias", Name: t.Name, Sub: sub, Pos: encodePos(t.Span)}, nil
	case *ir.PPin:
		return &jpattern{Kind: "ppin", Name: t.Name, Pos: encodePos(t.Span)}, nil
	case *ir.PBin:
		segs := make([]jpbinseg, len(t.Segs))
		for i, s := range t.Segs {
			value, err := encodePattern(s.Value)
			if err != nil {
				return nil, err
			}
			size, err := encodeNode(s.Size)
			if err != nil {
				return nil, err
			}
			segs[i] = jpbinseg{Value: value, Size: size, Kind: int(s.Kind), Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &jpattern{Kind: "pbin", BinSegs: segs, Pos: encodePos(t.Span)}, nil
	}
	return nil, fmt.Errorf("irjson: unknown pattern %T", p)
}

func encodePatterns(ps []ir.Pattern) ([]jpattern, error) {
	if ps == nil {
		return nil, nil
	}
	out := make([]jpattern, len(ps))
	for i, p := range ps {
		jp, err := encodePattern(p)
		if err != nil {
			return nil, err
		}
		out[i] = *jp
	}
	return out, nil
}

func encodePPairs(ps []ir.PMapPair) ([]jppair, error) {
	if ps == nil {
		return nil, nil
	}
	out := make([]jppair, len(ps))
	for i, p := range ps {
		key, err := encodeNode(p.Key)
		if err != nil {
			return nil, err
		}
		value, err := encodePattern(p.Value)
		if err != nil {
			return nil, err
		}
		out[i] = jppair{Key: *key, Value: *value}
	}
	return out, nil
}
