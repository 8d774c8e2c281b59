// Package irjson is the kind-tagged JSON encoding of IR trees. The front
// end hands trees to the driver in this form and the driver hands the
// rewritten tree back to the printer; it is also the canonical byte form
// trees are fingerprinted and cached under.
package irjson

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/exform/exform/internal/ir"
)

// Encode serializes a tree. The output is deterministic for a given tree.
func Encode(root ir.Node) ([]byte, error) {
	jn, err := encodeNode(root)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(jn, "", "  ")
}

// Decode parses a tree previously produced by Encode (or by the front end).
func Decode(data []byte) (ir.Node, error) {
	var jn jnode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, fmt.Errorf("irjson: %w", err)
	}
	return decodeNode(&jn)
}

// Fingerprint returns a stable hex digest of the tree's canonical encoding.
func Fingerprint(root ir.Node) (string, error) {
	data, err := Encode(root)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

type jnode struct {
	Kind string `json:"kind"`

	Name    string   `json:"name,omitempty"`
	Segs    []string `json:"segs,omitempty"`
	Fun     string   `json:"fun,omitempty"`
	Field   string   `json:"field,omitempty"`
	Op      string   `json:"op,omitempty"`
	Text    string   `json:"text,omitempty"`
	Str     string   `json:"str,omitempty"`
	As      string   `json:"as,omitempty"`
	Int     int64    `json:"int,omitempty"`
	Float   float64  `json:"float,omitempty"`
	Bool    bool     `json:"bool,omitempty"`
	Private bool     `json:"private,omitempty"`

	Body    []jnode    `json:"body,omitempty"`
	Stmts   []jnode    `json:"stmts,omitempty"`
	Args    []jnode    `json:"args,omitempty"`
	Elems   []jnode    `json:"elems,omitempty"`
	Filters []jnode    `json:"filters,omitempty"`
	Params  []jpattern `json:"params,omitempty"`

	Value   *jnode `json:"value,omitempty"`
	Guard   *jnode `json:"guard,omitempty"`
	Cond    *jnode `json:"cond,omitempty"`
	Then    *jnode `json:"then,omitempty"`
	Else    *jnode `json:"else,omitempty"`
	Subject *jnode `json:"subject,omitempty"`
	Target  *jnode `json:"target,omitempty"`
	Key     *jnode `json:"key,omitempty"`
	Left    *jnode `json:"left,omitempty"`
	Right   *jnode `json:"right,omitempty"`
	Operand *jnode `json:"operand,omitempty"`
	Block   *jnode `json:"block,omitempty"`
	AfterMs *jnode `json:"after_ms,omitempty"`
	After   *jnode `json:"after,omitempty"`
	Into    *jnode `json:"into,omitempty"`

	Lhs *jpattern `json:"lhs,omitempty"`

	Clauses []jclause  `json:"clauses,omitempty"`
	Rescue  []jclause  `json:"rescue,omitempty"`
	Catch   []jclause  `json:"catch,omitempty"`
	ElseOf  []jclause  `json:"else_clauses,omitempty"`
	Gens    []jgen     `json:"gens,omitempty"`
	Pairs   []jpair    `json:"pairs,omitempty"`
	KwPairs []jkwpair  `json:"kw_pairs,omitempty"`
	BinSegs []jbinseg  `json:"bin_segs,omitempty"`

	Pos  *jpos  `json:"pos,omitempty"`
	Meta *jmeta `json:"meta,omitempty"`
}

type jpattern struct {
	Kind string `json:"kind"`

	Name      string `json:"name,omitempty"`
	Synthetic bool   `json:"synthetic,omitempty"`

	Segs  []string   `json:"segs,omitempty"`
	Elems []jpattern `json:"elems,omitempty"`
	Heads []jpattern `json:"heads,omitempty"`
	Tail  *jpattern  `json:"tail,omitempty"`
	Sub   *jpattern  `json:"sub,omitempty"`
	Value *jnode     `json:"value,omitempty"`

	Pairs   []jppair   `json:"pairs,omitempty"`
	BinSegs []jpbinseg `json:"bin_segs,omitempty"`

	Pos *jpos `json:"pos,omitempty"`
}

type jclause struct {
	Pats  []jpattern `json:"pats,omitempty"`
	Guard *jnode     `json:"guard,omitempty"`
	Body  *jnode     `json:"body,omitempty"`
}

type jgen struct {
	Pat jpattern `json:"pat"`
	Src jnode    `json:"src"`
}

type jpair struct {
	Key   jnode `json:"key"`
	Value jnode `json:"value"`
}

type jkwpair struct {
	Key   string `json:"key"`
	Value jnode  `json:"value"`
}

type jppair struct {
	Key   jnode    `json:"key"`
	Value jpattern `json:"value"`
}

type jbinseg struct {
	Value  *jnode `json:"value,omitempty"`
	Size   *jnode `json:"size,omitempty"`
	Kind   int    `json:"seg_kind"`
	Unit   int    `json:"unit,omitempty"`
	Signed bool   `json:"signed,omitempty"`
	Little bool   `json:"little,omitempty"`
}

type jpbinseg struct {
	Value  *jpattern `json:"value,omitempty"`
	Size   *jnode    `json:"size,omitempty"`
	Kind   int       `json:"seg_kind"`
	Unit   int       `json:"unit,omitempty"`
	Signed bool      `json:"signed,omitempty"`
	Little bool      `json:"little,omitempty"`
}

type jpos struct {
	File string `json:"file,omitempty"`
	Line int    `json:"line,omitempty"`
	Col  int    `json:"col,omitempty"`
}

type jmeta struct {
	Flags  uint16 `json:"flags,omitempty"`
	Folded []byte `json:"folded,omitempty"`
}

func encodePos(p ir.Pos) *jpos {
	if p.IsZero() {
		return nil
	}
	return &jpos{File: p.File, Line: p.Line, Col: p.Col}
}

func decodePos(p *jpos) ir.Pos {
	if p == nil {
		return ir.Pos{}
	}
	return ir.Pos{File: p.File, Line: p.Line, Col: p.Col}
}

func encodeMeta(m ir.Meta) *jmeta {
	if m.IsZero() {
		return nil
	}
	return &jmeta{Flags: uint16(m.Flags()), Folded: m.Folded()}
}

func decodeMeta(m *jmeta) ir.Meta {
	if m == nil {
		return ir.Meta{}
	}
	out := ir.Meta{}.WithFlags(ir.Flag(m.Flags))
	if m.Folded != nil {
		out = out.WithFolded(m.Folded)
	}
	return out
}
