package irjson

import (
	"fmt"

	"github.com/exform/exform/internal/ir"
)

func decodeNode(jn *jnode) (ir.Node, error) {
	if jn == nil {
		return nil, nil
	}
	pos := decodePos(jn.Pos)
	meta := decodeMeta(jn.Meta)
	switch jn.Kind {
	case "module":
		body, err := decodeNodes(jn.Body)
		if err != nil {
			return nil, err
		}
		return &ir.Module{Name: jn.Name, Body: body, Span: pos, Attr: meta}, nil
	case "def":
		params, err := decodePatterns(jn.Params)
		if err != nil {
			return nil, err
		}
		guard, err := decodeNode(jn.Guard)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(jn.Block)
		if err != nil {
			return nil, err
		}
		return &ir.FunDef{Name: jn.Name, Params: params, Guard: guard, Body: body, Private: jn.Private, Span: pos, Attr: meta}, nil
	case "block":
		stmts, err := decodeNodes(jn.Stmts)
		if err != nil {
			return nil, err
		}
		return &ir.Block{Stmts: stmts, Span: pos, Attr: meta}, nil
	case "bind":
		lhs, err := decodePattern(jn.Lhs)
		if err != nil {
			return nil, err
		}
		value, err := decodeNode(jn.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Bind{Lhs: lhs, Value: value, Span: pos, Attr: meta}, nil
	case "attribute":
		value, err := decodeNode(jn.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Attribute{Name: jn.Name, Value: value, Span: pos, Attr: meta}, nil
	case "alias":
		return &ir.AliasDirective{Segs: jn.Segs, As: jn.As, Span: pos, Attr: meta}, nil
	case "raw":
		return &ir.Raw{Text: jn.Text, Span: pos, Attr: meta}, nil
	case "var":
		return &ir.Var{Name: jn.Name, Span: pos, Attr: meta}, nil
	case "if":
		cond, err := decodeNode(jn.Cond)
		if err != nil {
			return nil, err
		}
		then, err := decodeNode(jn.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeNode(jn.Else)
		if err != nil {
			return nil, err
		}
		return &ir.If{Cond: cond, Then: then, Else: els, Span: pos, Attr: meta}, nil
	case "case":
		subject, err := decodeNode(jn.Subject)
		if err != nil {
			return nil, err
		}
		clauses, err := decodeClauses(jn.Clauses)
		if err != nil {
			return nil, err
		}
		return &ir.Case{Subject: subject, Clauses: clauses, Span: pos, Attr: meta}, nil
	case "receive":
		clauses, err := decodeClauses(jn.Clauses)
		if err != nil {
			return nil, err
		}
		afterMs, err := decodeNode(jn.AfterMs)
		if err != nil {
			return nil, err
		}
		after, err := decodeNode(jn.After)
		if err != nil {
			return nil, err
		}
		return &ir.Receive{Clauses: clauses, AfterMs: afterMs, After: after, Span: pos, Attr: meta}, nil
	case "try":
		body, err := decodeNode(jn.Block)
		if err != nil {
			return nil, err
		}
		rescue, err := decodeClauses(jn.Rescue)
		if err != nil {
			return nil, err
		}
		catch, err := decodeClauses(jn.Catch)
		if err != nil {
			return nil, err
		}
		elseOf, err := decodeClauses(jn.ElseOf)
		if err != nil {
			return nil, err
		}
		after, err := decodeNode(jn.After)
		if err != nil {
			return nil, err
		}
		return &ir.Try{Body: body, Rescue: rescue, Catch: catch, Else: elseOf, After: after, Span: pos, Attr: meta}, nil
	case "for":
		gens := make([]ir.Generator, len(jn.Gens))
		for i := range jn.Gens {
			pat, err := decodePattern(&jn.Gens[i].Pat)
			if err != nil {
				return nil, err
			}
			src, err := decodeNode(&jn.Gens[i].Src)
			if err != nil {
				return nil, err
			}
			gens[i] = ir.Generator{Pat: pat, Src: src}
		}
		filters, err := decodeNodes(jn.Filters)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(jn.Block)
		if err != nil {
			return nil, err
		}
		into, err := decodeNode(jn.Into)
		if err != nil {
			return nil, err
		}
		return &ir.For{Gens: gens, Filters: filters, Body: body, Into: into, Span: pos, Attr: meta}, nil
	case "fn":
		clauses, err := decodeClauses(jn.Clauses)
		if err != nil {
			return nil, err
		}
		return &ir.Fn{Clauses: clauses, Span: pos, Attr: meta}, nil
	case "binop":
		left, err := decodeNode(jn.Left)
		if err != nil {
			return nil, err
		}
		right, err := decodeNode(jn.Right)
		if err != nil {
			return nil, err
		}
		return &ir.BinOp{Op: jn.Op, Left: left, Right: right, Span: pos, Attr: meta}, nil
	case "unop":
		operand, err := decodeNode(jn.Operand)
		if err != nil {
			return nil, err
		}
		return &ir.UnOp{Op: jn.Op, Operand: operand, Span: pos, Attr: meta}, nil
	case "call":
		args, err := decodeNodes(jn.Args)
		if err != nil {
			return nil, err
		}
		return &ir.Call{Fun: jn.Fun, Args: args, Span: pos, Attr: meta}, nil
	case "remote":
		args, err := decodeNodes(jn.Args)
		if err != nil {
			return nil, err
		}
		return &ir.RemoteCall{Segs: jn.Segs, Fun: jn.Fun, Args: args, Span: pos, Attr: meta}, nil
	case "access":
		target, err := decodeNode(jn.Target)
		if err != nil {
			return nil, err
		}
		key, err := decodeNode(jn.Key)
		if err != nil {
			return nil, err
		}
		return &ir.Access{Target: target, Key: key, Span: pos, Attr: meta}, nil
	case "dot":
		target, err := decodeNode(jn.Target)
		if err != nil {
			return nil, err
		}
		return &ir.Dot{Target: target, Field: jn.Field, Span: pos, Attr: meta}, nil
	case "atom":
		return &ir.Atom{Name: jn.Name, Span: pos, Attr: meta}, nil
	case "int":
		return &ir.IntLit{Value: jn.Int, Span: pos, Attr: meta}, nil
	case "float":
		return &ir.FloatLit{Value: jn.Float, Span: pos, Attr: meta}, nil
	case "string":
		return &ir.StringLit{Value: jn.Str, Span: pos, Attr: meta}, nil
	case "bool":
		return &ir.BoolLit{Value: jn.Bool, Span: pos, Attr: meta}, nil
	case "nil":
		return &ir.NilLit{Span: pos, Attr: meta}, nil
	case "tuple":
		elems, err := decodeNodes(jn.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.Tuple{Elems: elems, Span: pos, Attr: meta}, nil
	case "list":
		elems, err := decodeNodes(jn.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.ListLit{Elems: elems, Span: pos, Attr: meta}, nil
	case "map":
		pairs := make([]ir.Pair, len(jn.Pairs))
		for i := range jn.Pairs {
			key, err := decodeNode(&jn.Pairs[i].Key)
			if err != nil {
				return nil, err
			}
			value, err := decodeNode(&jn.Pairs[i].Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = ir.Pair{Key: key, Value: value}
		}
		return &ir.MapLit{Pairs: pairs, Span: pos, Attr: meta}, nil
	case "kwlist":
		pairs := make([]ir.KeywordPair, len(jn.KwPairs))
		for i := range jn.KwPairs {
			value, err := decodeNode(&jn.KwPairs[i].Value)
			if err != nil {
				return nil, err
			}
			pairs[i] = ir.KeywordPair{Key: jn.KwPairs[i].Key, Value: value}
		}
		return &ir.KeywordList{Pairs: pairs, Span: pos, Attr: meta}, nil
	case "binary":
		segs := make([]ir.BinSegment, len(jn.BinSegs))
		for i, s := range jn.BinSegs {
			value, err := decodeNode(s.Value)
			if err != nil {
				return nil, err
			}
			size, err := decodeNode(s.Size)
			if err != nil {
				return nil, err
			}
			segs[i] = ir.BinSegment{Value: value, Size: size, Kind: ir.SegKind(s.Kind), Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.BinaryLit{Segs: segs, Span: pos, Attr: meta}, nil
	}
	return nil, fmt.Errorf("irjson: unknown node kind %q", jn.Kind)
}

func decodeNodes(jns []jnode) ([]ir.Node, error) {
	if jns == nil {
		return nil, nil
	}
	out := make([]ir.Node, len(jns))
	for i := range jns {
		n, err := decodeNode(&jns[i])
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeClauses(jcs []jclause) ([]ir.Clause, error) {
	if jcs == nil {
		return nil, nil
	}
	out := make([]ir.Clause, len(jcs))
	for i := range jcs {
		pats, err := decodePatterns(jcs[i].Pats)
		if err != nil {
			return nil, err
		}
		guard, err := decodeNode(jcs[i].Guard)
		if err != nil {
			return nil, err
		}
		body, err := decodeNode(jcs[i].Body)
		if err != nil {
			return nil, err
		}
		out[i] = ir.Clause{Pats: pats, Guard: guard, Body: body}
	}
	return out, nil
}

func decodePattern(jp *jpattern) (ir.Pattern, error) {
	if jp == nil {
		return nil, nil
	}
	pos := decodePos(jp.Pos)
	switch jp.Kind {
	case "pvar":
		return &ir.PVar{Name: jp.Name, Synthetic: jp.Synthetic, Span: pos}, nil
	case "ptuple":
		elems, err := decodePatterns(jp.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.PTuple{Elems: elems, Span: pos}, nil
	case "plist":
		elems, err := decodePatterns(jp.Elems)
		if err != nil {
			return nil, err
		}
		return &ir.PList{Elems: elems, Span: pos}, nil
	case "pcons":
		heads, err := decodePatterns(jp.Heads)
		if err != nil {
			return nil, err
		}
		tail, err := decodePattern(jp.Tail)
		if err != nil {
			return nil, err
		}
		return &ir.PCons{Heads: heads, Tail: tail, Span: pos}, nil
	case "pmap":
		pairs, err := decodePPairs(jp.Pairs)
		if err != nil {
			return nil, err
		}
		return &ir.PMap{Pairs: pairs, Span: pos}, nil
	case "pstruct":
		pairs, err := decodePPairs(jp.Pairs)
		if err != nil {
			return nil, err
		}
		return &ir.PStruct{Segs: jp.Segs, Pairs: pairs, Span: pos}, nil
	case "plit":
		value, err := decodeNode(jp.Value)
		if err != nil {
			return nil, err
		}
		return &ir.PLit{Value: value, Span: pos}, nil
	case "palias":
		sub, err := decodePattern(jp.Sub)
		if err != nil {
			return nil, err
		}
		return &ir.PAlias{Name: jp.Name, Sub: sub, Span: pos}, nil
	case "ppin":
		return &ir.PPin{Name: jp.Name, Span: pos}, nil
	case "pbin":
		segs := make([]ir.PBinSegment, len(jp.BinSegs))
		for i, s := range jp.BinSegs {
			value, err := decodePattern(s.Value)
			if err != nil {
				return nil, err
			}
			size, err := decodeNode(s.Size)
			if err != nil {
				return nil, err
			}
			segs[i] = ir.PBinSegment{Value: value, Size: size, Kind: ir.SegKind(s.Kind), Unit: s.Unit, Signed: s.Signed, Little: s.Little}
		}
		return &ir.PBin{Segs: segs, Span: pos}, nil
	}
	return nil, fmt.Errorf("irjson: unknown pattern kind %q", jp.Kind)
}

func decodePatterns(jps []jpattern) ([]ir.Pattern, error) {
	if jps == nil {
		return nil, nil
	}
	out := make([]ir.Pattern, len(jps))
	for i := range jps {
		p, err := decodePattern(&jps[i])
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func decodePPairs(jps []jppair) ([]ir.PMapPair, error) {
	if jps == nil {
		return nil, nil
	}
	out := make([]ir.PMapPair, len(jps))
	for i := range jps {
		key, err := decodeNode(&jps[i].Key)
		if err != nil {
			return nil, err
		}
		value, err := decodePattern(&jps[i].Value)
		if err != nil {
			return nil, err
		}
		out[i] = ir.PMapPair{Key: key, Value: value}
	}
	return out, nil
}
