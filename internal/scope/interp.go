package scope

// Interpolation scanning. Generated string literals carry raw source text
// with #{...} slots; a variable referenced only from such a slot is still a
// live reference, so the analyzer must see it. Missing a slot here is the
// "analyzer blind spot" failure class: it gets fixed here, never worked
// around inside an individual pass.

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/exform/exform/internal/ir"
)

// Words that look like identifiers inside a slot but never name a variable.
var interpKeywords = map[string]bool{
	"nil": true, "true": true, "false": true,
	"fn": true, "do": true, "end": true, "when": true, "in": true,
	"and": true, "or": true, "not": true,
	"if": true, "else": true, "unless": true, "cond": true, "case": true,
	"for": true, "try": true, "rescue": true, "catch": true, "after": true,
	"receive": true, "raise": true, "throw": true, "with": true,
}

// InterpNames extracts the variable names referenced inside the #{...}
// interpolation slots of raw string text. Names are lowercase identifiers
// that are not keywords, not atom or keyword-list keys, not preceded by a
// dot (remote or field access) and not immediately called.
func InterpNames(s string) []string {
	var names []string
	seen := map[string]bool{}
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '#' || s[i+1] != '{' {
			continue
		}
		slot, end := scanSlot(s, i+2)
		if end < 0 {
			break // unterminated slot: nothing reliable to scan
		}
		for _, name := range identifiersIn(slot) {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
		i = end
	}
	return names
}

// InterpReads returns the names read through #{...} interpolation slots of
// string literals and raw text anywhere in n. These reads are textual:
// rename passes cannot rewrite them, so a binder they mention must keep its
// name even when every structural read has been rewritten.
func InterpReads(n ir.Node) *treeset.Set {
	acc := NewNames()
	collectInterpReads(n, acc)
	return acc
}

func collectInterpReads(n ir.Node, acc *treeset.Set) {
	if n == nil {
		return
	}
	switch t := n.(type) {
	case *ir.StringLit:
		for _, name := range InterpNames(t.Value) {
			acc.Add(name)
		}
	case *ir.Raw:
		for _, name := range InterpNames(t.Text) {
			acc.Add(name)
		}
	case *ir.Module:
		for _, s := range t.Body {
			collectInterpReads(s, acc)
		}
	case *ir.FunDef:
		for _, p := range t.Params {
			collectPatternInterpReads(p, acc)
		}
		collectInterpReads(t.Guard, acc)
		collectInterpReads(t.Body, acc)
	case *ir.Block:
		for _, s := range t.Stmts {
			collectInterpReads(s, acc)
		}
	case *ir.Bind:
		collectPatternInterpReads(t.Lhs, acc)
		collectInterpReads(t.Value, acc)
	case *ir.Attribute:
		collectInterpReads(t.Value, acc)
	case *ir.If:
		collectInterpReads(t.Cond, acc)
		collectInterpReads(t.Then, acc)
		collectInterpReads(t.Else, acc)
	case *ir.Case:
		collectInterpReads(t.Subject, acc)
		for _, c := range t.Clauses {
			collectClauseInterpReads(c, acc)
		}
	case *ir.Receive:
		for _, c := range t.Clauses {
			collectClauseInterpReads(c, acc)
		}
		collectInterpReads(t.AfterMs, acc)
		collectInterpReads(t.After, acc)
	case *ir.Try:
		collectInterpReads(t.Body, acc)
		for _, cs := range [][]ir.Clause{t.Rescue, t.Catch, t.Else} {
			for _, c := range cs {
				collectClauseInterpReads(c, acc)
			}
		}
		collectInterpReads(t.After, acc)
	case *ir.For:
		for _, g := range t.Gens {
			collectPatternInterpReads(g.Pat, acc)
			collectInterpReads(g.Src, acc)
		}
		for _, f := range t.Filters {
			collectInterpReads(f, acc)
		}
		collectInterpReads(t.Body, acc)
		collectInterpReads(t.Into, acc)
	case *ir.Fn:
		for _, c := range t.Clauses {
			collectClauseInterpReads(c, acc)
		}
	case *ir.BinOp:
		collectInterpReads(t.Left, acc)
		collectInterpReads(t.Right, acc)
	case *ir.UnOp:
		collectInterpReads(t.Operand, acc)
	case *ir.Call:
		for _, a := range t.Args {
			collectInterpReads(a, acc)
		}
	case *ir.RemoteCall:
		for _, a := range t.Args {
			collectInterpReads(a, acc)
		}
	case *ir.Access:
		collectInterpReads(t.Target, acc)
		collectInterpReads(t.Key, acc)
	case *ir.Dot:
		collectInterpReads(t.Target, acc)
	case *ir.Tuple:
		for _, e := range t.Elems {
			collectInterpReads(e, acc)
		}
	case *ir.ListLit:
		for _, e := range t.Elems {
			collectInterpReads(e, acc)
		}
	case *ir.MapLit:
		for _, p := range t.Pairs {
			collectInterpReads(p.Key, acc)
			collectInterpReads(p.Value, acc)
		}
	case *ir.KeywordList:
		for _, p := range t.Pairs {
			collectInterpReads(p.Value, acc)
		}
	case *ir.BinaryLit:
		for _, s := range t.Segs {
			collectInterpReads(s.Value, acc)
			collectInterpReads(s.Size, acc)
		}
	}
}

func collectClauseInterpReads(c ir.Clause, acc *treeset.Set) {
	for _, p := range c.Pats {
		collectPatternInterpReads(p, acc)
	}
	collectInterpReads(c.Guard, acc)
	collectInterpReads(c.Body, acc)
}

func collectPatternInterpReads(p ir.Pattern, acc *treeset.Set) {
	if p == nil {
		return
	}
	switch t := p.(type) {
	case *ir.PTuple:
		for _, e := range t.Elems {
			collectPatternInterpReads(e, acc)
		}
	case *ir.PList:
		for _, e := range t.Elems {
			collectPatternInterpReads(e, acc)
		}
	case *ir.PCons:
		for _, h := range t.Heads {
			collectPatternInterpReads(h, acc)
		}
		collectPatternInterpReads(t.Tail, acc)
	case *ir.PMap:
		for _, pr := range t.Pairs {
			collectInterpReads(pr.Key, acc)
			collectPatternInterpReads(pr.Value, acc)
		}
	case *ir.PStruct:
		for _, pr := range t.Pairs {
			collectInterpReads(pr.Key, acc)
			collectPatternInterpReads(pr.Value, acc)
		}
	case *ir.PLit:
		collectInterpReads(t.Value, acc)
	case *ir.PAlias:
		collectPatternInterpReads(t.Sub, acc)
	case *ir.PBin:
		for _, s := range t.Segs {
			collectPatternInterpReads(s.Value, acc)
			collectInterpReads(s.Size, acc)
		}
	}
}

// scanSlot reads from the first char after "#{" to the matching "}",
// honoring nested braces and skipping over quoted strings. Returns the slot
// text and the index of the closing brace, or -1 if unterminated.
func scanSlot(s string, start int) (string, int) {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start:i], i
			}
		case '"', '\'':
			quote := s[i]
			i++
			for i < len(s) && s[i] != quote {
				if s[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(s) {
				return "", -1
			}
		}
	}
	return "", -1
}

func identifiersIn(expr string) []string {
	var out []string
	prev := byte(0) // last significant byte before the current identifier
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if c == '"' || c == '\'' {
			for i++; i < len(expr) && expr[i] != c; i++ {
				if expr[i] == '\\' {
					i++
				}
			}
			prev = c
			continue
		}
		if !isIdentStart(c) {
			if c != ' ' && c != '\t' && c != '\n' {
				prev = c
			} else if prev == '.' || prev == ':' {
				// dot/colon adjacency never spans whitespace
				prev = 0
			}
			continue
		}
		j := i + 1
		for j < len(expr) && isIdentPart(expr[j]) {
			j++
		}
		if j < len(expr) && (expr[j] == '?' || expr[j] == '!') {
			j++
		}
		word := expr[i:j]
		next := nextSignificant(expr, j)
		switch {
		case prev == '.' || prev == ':' || prev == '%' || prev == '&' || prev == '@':
			// field/remote access, atom, struct, capture, attribute
		case prev != 0 && isIdentPart(prev):
			// tail of a longer token, e.g. the "e8" of "1.0e8"
		case next == '(':
			// local call
		case next == ':':
			// keyword-list key
		case interpKeywords[word]:
		case word == "_":
		default:
			out = append(out, word)
		}
		prev = 0
		i = j - 1
	}
	return out
}

func nextSignificant(s string, i int) byte {
	for ; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\n' {
			return s[i]
		}
	}
	return 0
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c == '_'
}

func isIdentPart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
