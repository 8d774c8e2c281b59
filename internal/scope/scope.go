// Package scope computes which variable names a subtree declares and which
// it reads. It is the single source of truth for liveness: passes must never
// approximate this locally, because ad hoc substitutes systematically miss
// closures, string interpolation or nested clause bodies and then discard
// bindings that are still live.
//
// Name sets are gods tree sets ordered by name, so "exactly one candidate"
// decisions in the passes are deterministic.
package scope

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/exform/exform/internal/ir"
)

// NewNames returns an empty ordered name set.
func NewNames() *treeset.Set {
	return treeset.NewWith(utils.StringComparator)
}

// Names converts a set back to a sorted string slice.
func Names(s *treeset.Set) []string {
	out := make([]string, 0, s.Size())
	for _, v := range s.Values() {
		out = append(out, v.(string))
	}
	return out
}

// Uses returns every variable name read anywhere in n.
//
// Read positions include operator operands, call arguments, access targets
// and keys, clause guards and bodies, pinned pattern variables, map keys and
// binary segment sizes inside patterns, and #{...} interpolation slots in
// string literals and raw text. Closures and comprehensions contribute only
// their free variables: a name shadowed by their own parameters is not a use
// of the enclosing binding. Case, receive and try clauses are counted
// without shadowing subtraction, since their bindings leak into the
// surrounding scope in the target language.
func Uses(n ir.Node) *treeset.Set {
	acc := NewNames()
	collectUses(n, acc, true)
	return acc
}

// AllReads is Uses without the closure/comprehension shadowing subtraction:
// every read position of every name, no matter which binding it resolves to.
// Liveness passes that rename all binders of a name at once must consult
// this superset, or a closure reading its own shadow of a dead outer binder
// would lose its parameter.
func AllReads(n ir.Node) *treeset.Set {
	acc := NewNames()
	collectUses(n, acc, false)
	return acc
}

func collectUses(n ir.Node, acc *treeset.Set, scoped bool) {
	if n == nil {
		return
	}
	switch t := n.(type) {
	case *ir.Var:
		acc.Add(t.Name)
	case *ir.Module:
		for _, s := range t.Body {
			collectUses(s, acc, scoped)
		}
	case *ir.FunDef:
		for _, p := range t.Params {
			collectPatternUses(p, acc)
		}
		collectUses(t.Guard, acc, scoped)
		collectUses(t.Body, acc, scoped)
	case *ir.Block:
		for _, s := range t.Stmts {
			collectUses(s, acc, scoped)
		}
	case *ir.Bind:
		collectPatternUses(t.Lhs, acc)
		collectUses(t.Value, acc, scoped)
	case *ir.Attribute:
		collectUses(t.Value, acc, scoped)
	case *ir.If:
		collectUses(t.Cond, acc, scoped)
		collectUses(t.Then, acc, scoped)
		collectUses(t.Else, acc, scoped)
	case *ir.Case:
		collectUses(t.Subject, acc, scoped)
		for _, c := range t.Clauses {
			collectClauseUses(c, acc, scoped)
		}
	case *ir.Receive:
		for _, c := range t.Clauses {
			collectClauseUses(c, acc, scoped)
		}
		collectUses(t.AfterMs, acc, scoped)
		collectUses(t.After, acc, scoped)
	case *ir.Try:
		collectUses(t.Body, acc, scoped)
		for _, c := range t.Rescue {
			collectClauseUses(c, acc, scoped)
		}
		for _, c := range t.Catch {
			collectClauseUses(c, acc, scoped)
		}
		for _, c := range t.Else {
			collectClauseUses(c, acc, scoped)
		}
		collectUses(t.After, acc, scoped)
	case *ir.For:
		for _, g := range t.Gens {
			collectUses(g.Src, acc, scoped)
			collectPatternUses(g.Pat, acc)
		}
		collectUses(t.Into, acc, scoped)
		if !scoped {
			for _, f := range t.Filters {
				collectUses(f, acc, false)
			}
			collectUses(t.Body, acc, false)
			return
		}
		// Filters and body see the generator bindings; only free names
		// escape to the enclosing scope.
		inner := NewNames()
		for _, f := range t.Filters {
			collectUses(f, inner, true)
		}
		collectUses(t.Body, inner, true)
		bound := NewNames()
		for _, g := range t.Gens {
			collectPatternVars(g.Pat, bound)
		}
		addDifference(acc, inner, bound)
	case *ir.Fn:
		// A closure is a use-site for its free variables; its own
		// parameters shadow the enclosing scope.
		for _, c := range t.Clauses {
			if !scoped {
				collectClauseUses(c, acc, false)
				continue
			}
			inner := NewNames()
			for _, p := range c.Pats {
				collectPatternUses(p, inner)
			}
			collectUses(c.Guard, inner, true)
			collectUses(c.Body, inner, true)
			bound := NewNames()
			for _, p := range c.Pats {
				collectPatternVars(p, bound)
			}
			addDifference(acc, inner, bound)
		}
	case *ir.BinOp:
		collectUses(t.Left, acc, scoped)
		collectUses(t.Right, acc, scoped)
	case *ir.UnOp:
		collectUses(t.Operand, acc, scoped)
	case *ir.Call:
		for _, a := range t.Args {
			collectUses(a, acc, scoped)
		}
	case *ir.RemoteCall:
		for _, a := range t.Args {
			collectUses(a, acc, scoped)
		}
	case *ir.Access:
		collectUses(t.Target, acc, scoped)
		collectUses(t.Key, acc, scoped)
	case *ir.Dot:
		collectUses(t.Target, acc, scoped)
	case *ir.StringLit:
		for _, name := range InterpNames(t.Value) {
			acc.Add(name)
		}
	case *ir.Raw:
		for _, name := range InterpNames(t.Text) {
			acc.Add(name)
		}
	case *ir.Tuple:
		for _, e := range t.Elems {
			collectUses(e, acc, scoped)
		}
	case *ir.ListLit:
		for _, e := range t.Elems {
			collectUses(e, acc, scoped)
		}
	case *ir.MapLit:
		for _, p := range t.Pairs {
			collectUses(p.Key, acc, scoped)
			collectUses(p.Value, acc, scoped)
		}
	case *ir.KeywordList:
		for _, p := range t.Pairs {
			collectUses(p.Value, acc, scoped)
		}
	case *ir.BinaryLit:
		for _, s := range t.Segs {
			collectUses(s.Value, acc, scoped)
			collectUses(s.Size, acc, scoped)
		}
	}
	// Atoms, numbers, booleans, nil, alias directives: no reads.
}

func collectClauseUses(c ir.Clause, acc *treeset.Set, scoped bool) {
	for _, p := range c.Pats {
		collectPatternUses(p, acc)
	}
	collectUses(c.Guard, acc, scoped)
	collectUses(c.Body, acc, scoped)
}

// collectPatternUses collects the read positions inside a pattern: pins,
// map/struct key expressions, binary segment sizes, literal matches. Binders
// are not uses.
func collectPatternUses(p ir.Pattern, acc *treeset.Set) {
	if p == nil {
		return
	}
	switch t := p.(type) {
	case *ir.PPin:
		acc.Add(t.Name)
	case *ir.PTuple:
		for _, e := range t.Elems {
			collectPatternUses(e, acc)
		}
	case *ir.PList:
		for _, e := range t.Elems {
			collectPatternUses(e, acc)
		}
	case *ir.PCons:
		for _, h := range t.Heads {
			collectPatternUses(h, acc)
		}
		collectPatternUses(t.Tail, acc)
	case *ir.PMap:
		for _, pr := range t.Pairs {
			collectUses(pr.Key, acc, true)
			collectPatternUses(pr.Value, acc)
		}
	case *ir.PStruct:
		for _, pr := range t.Pairs {
			collectUses(pr.Key, acc, true)
			collectPatternUses(pr.Value, acc)
		}
	case *ir.PLit:
		collectUses(t.Value, acc, true)
	case *ir.PAlias:
		collectPatternUses(t.Sub, acc)
	case *ir.PBin:
		for _, s := range t.Segs {
			collectPatternUses(s.Value, acc)
			collectUses(s.Size, acc, true)
		}
	}
}

// PatternVars returns the names a pattern binds. Pins are reads, not binds;
// the wildcard "_" is not a name.
func PatternVars(p ir.Pattern) *treeset.Set {
	acc := NewNames()
	collectPatternVars(p, acc)
	return acc
}

func collectPatternVars(p ir.Pattern, acc *treeset.Set) {
	if p == nil {
		return
	}
	switch t := p.(type) {
	case *ir.PVar:
		if t.Name != "_" {
			acc.Add(t.Name)
		}
	case *ir.PTuple:
		for _, e := range t.Elems {
			collectPatternVars(e, acc)
		}
	case *ir.PList:
		for _, e := range t.Elems {
			collectPatternVars(e, acc)
		}
	case *ir.PCons:
		for _, h := range t.Heads {
			collectPatternVars(h, acc)
		}
		collectPatternVars(t.Tail, acc)
	case *ir.PMap:
		for _, pr := range t.Pairs {
			collectPatternVars(pr.Value, acc)
		}
	case *ir.PStruct:
		for _, pr := range t.Pairs {
			collectPatternVars(pr.Value, acc)
		}
	case *ir.PAlias:
		if t.Name != "_" {
			acc.Add(t.Name)
		}
		collectPatternVars(t.Sub, acc)
	case *ir.PBin:
		for _, s := range t.Segs {
			collectPatternVars(s.Value, acc)
		}
	}
}

// Declares returns the names a statement introduces into its enclosing
// block: the binders of a Bind's left side. Clause binders of case and
// receive technically leak in the target language, but relying on that is
// unsafe generated code, so they are not reported here.
func Declares(stmt ir.Node) *treeset.Set {
	acc := NewNames()
	if b, ok := stmt.(*ir.Bind); ok {
		collectPatternVars(b.Lhs, acc)
	}
	return acc
}

// AllBinders returns every name bound by any pattern anywhere inside n,
// including nested closures, comprehensions and clause patterns. Used to
// answer "is this name declared at all in this scope".
func AllBinders(n ir.Node) *treeset.Set {
	acc := NewNames()
	collectAllBinders(n, acc)
	return acc
}

func collectAllBinders(n ir.Node, acc *treeset.Set) {
	if n == nil {
		return
	}
	switch t := n.(type) {
	case *ir.Module:
		for _, s := range t.Body {
			collectAllBinders(s, acc)
		}
	case *ir.FunDef:
		for _, p := range t.Params {
			collectPatternVars(p, acc)
		}
		collectAllBinders(t.Body, acc)
	case *ir.Block:
		for _, s := range t.Stmts {
			collectAllBinders(s, acc)
		}
	case *ir.Bind:
		collectPatternVars(t.Lhs, acc)
		collectAllBinders(t.Value, acc)
	case *ir.If:
		collectAllBinders(t.Cond, acc)
		collectAllBinders(t.Then, acc)
		collectAllBinders(t.Else, acc)
	case *ir.Case:
		collectAllBinders(t.Subject, acc)
		for _, c := range t.Clauses {
			collectClauseBinders(c, acc)
		}
	case *ir.Receive:
		for _, c := range t.Clauses {
			collectClauseBinders(c, acc)
		}
		collectAllBinders(t.AfterMs, acc)
		collectAllBinders(t.After, acc)
	case *ir.Try:
		collectAllBinders(t.Body, acc)
		for _, c := range t.Rescue {
			collectClauseBinders(c, acc)
		}
		for _, c := range t.Catch {
			collectClauseBinders(c, acc)
		}
		for _, c := range t.Else {
			collectClauseBinders(c, acc)
		}
		collectAllBinders(t.After, acc)
	case *ir.For:
		for _, g := range t.Gens {
			collectPatternVars(g.Pat, acc)
			collectAllBinders(g.Src, acc)
		}
		for _, f := range t.Filters {
			collectAllBinders(f, acc)
		}
		collectAllBinders(t.Body, acc)
	case *ir.Fn:
		for _, c := range t.Clauses {
			collectClauseBinders(c, acc)
		}
	case *ir.BinOp:
		collectAllBinders(t.Left, acc)
		collectAllBinders(t.Right, acc)
	case *ir.UnOp:
		collectAllBinders(t.Operand, acc)
	case *ir.Call:
		for _, a := range t.Args {
			collectAllBinders(a, acc)
		}
	case *ir.RemoteCall:
		for _, a := range t.Args {
			collectAllBinders(a, acc)
		}
	case *ir.Access:
		collectAllBinders(t.Target, acc)
		collectAllBinders(t.Key, acc)
	case *ir.Dot:
		collectAllBinders(t.Target, acc)
	case *ir.Tuple:
		for _, e := range t.Elems {
			collectAllBinders(e, acc)
		}
	case *ir.ListLit:
		for _, e := range t.Elems {
			collectAllBinders(e, acc)
		}
	case *ir.MapLit:
		for _, p := range t.Pairs {
			collectAllBinders(p.Key, acc)
			collectAllBinders(p.Value, acc)
		}
	case *ir.KeywordList:
		for _, p := range t.Pairs {
			collectAllBinders(p.Value, acc)
		}
	case *ir.BinaryLit:
		for _, s := range t.Segs {
			collectAllBinders(s.Value, acc)
			collectAllBinders(s.Size, acc)
		}
	}
}

func collectClauseBinders(c ir.Clause, acc *treeset.Set) {
	for _, p := range c.Pats {
		collectPatternVars(p, acc)
	}
	collectAllBinders(c.Guard, acc)
	collectAllBinders(c.Body, acc)
}

// ContainsRaw reports whether any Raw node occurs in n. Scopes containing
// raw text are opaque: liveness decisions must refuse them, since the
// analyzer only sees the raw text's interpolation slots.
func ContainsRaw(n ir.Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*ir.Raw); ok {
		return true
	}
	found := false
	scan := func(c ir.Node) {
		if !found && ContainsRaw(c) {
			found = true
		}
	}
	switch t := n.(type) {
	case *ir.Module:
		for _, s := range t.Body {
			scan(s)
		}
	case *ir.FunDef:
		scan(t.Guard)
		scan(t.Body)
	case *ir.Block:
		for _, s := range t.Stmts {
			scan(s)
		}
	case *ir.Bind:
		scan(t.Value)
	case *ir.Attribute:
		scan(t.Value)
	case *ir.If:
		scan(t.Cond)
		scan(t.Then)
		scan(t.Else)
	case *ir.Case:
		scan(t.Subject)
		for _, c := range t.Clauses {
			scan(c.Guard)
			scan(c.Body)
		}
	case *ir.Receive:
		for _, c := range t.Clauses {
			scan(c.Guard)
			scan(c.Body)
		}
		scan(t.AfterMs)
		scan(t.After)
	case *ir.Try:
		scan(t.Body)
		for _, cs := range [][]ir.Clause{t.Rescue, t.Catch, t.Else} {
			for _, c := range cs {
				scan(c.Guard)
				scan(c.Body)
			}
		}
		scan(t.After)
	case *ir.For:
		for _, g := range t.Gens {
			scan(g.Src)
		}
		for _, f := range t.Filters {
			scan(f)
		}
		scan(t.Body)
		scan(t.Into)
	case *ir.Fn:
		for _, c := range t.Clauses {
			scan(c.Guard)
			scan(c.Body)
		}
	case *ir.BinOp:
		scan(t.Left)
		scan(t.Right)
	case *ir.UnOp:
		scan(t.Operand)
	case *ir.Call:
		for _, a := range t.Args {
			scan(a)
		}
	case *ir.RemoteCall:
		for _, a := range t.Args {
			scan(a)
		}
	case *ir.Access:
		scan(t.Target)
		scan(t.Key)
	case *ir.Dot:
		scan(t.Target)
	case *ir.Tuple:
		for _, e := range t.Elems {
			scan(e)
		}
	case *ir.ListLit:
		for _, e := range t.Elems {
			scan(e)
		}
	case *ir.MapLit:
		for _, p := range t.Pairs {
			scan(p.Key)
			scan(p.Value)
		}
	case *ir.KeywordList:
		for _, p := range t.Pairs {
			scan(p.Value)
		}
	case *ir.BinaryLit:
		for _, s := range t.Segs {
			scan(s.Value)
			scan(s.Size)
		}
	}
	return found
}

// addDifference adds every element of from that is not in minus to acc.
func addDifference(acc, from, minus *treeset.Set) {
	for _, v := range from.Values() {
		if !minus.Contains(v) {
			acc.Add(v)
		}
	}
}
