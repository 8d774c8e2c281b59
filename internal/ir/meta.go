package ir

// Meta is the per-node metadata bag used for cross-pass signaling. It is a
// value type with copy-on-write updates: With* methods return a new Meta and
// never mutate the receiver, so a pass's input tree is never aliased by its
// output tree.
//
// Keys are typed fields rather than an open string map, so a misspelled key
// or a wrongly-typed value is a compile error, not a silent miss.
type Meta struct {
	flags  Flag
	folded []byte // precomputed bytes of a constant binary literal
}

// Flag is a boolean metadata key.
type Flag uint16

const (
	// FlagSchema marks a module that represents a database schema; read by
	// the framework-synthesis layer, never set by the core passes.
	FlagSchema Flag = 1 << iota
	// FlagEndpoint marks a module that represents a web endpoint; same
	// ownership as FlagSchema.
	FlagEndpoint
	// FlagHandlerResult marks a function whose final expression must be a
	// tagged result tuple (set by the front end for framework callbacks).
	FlagHandlerResult
	// FlagKeep marks a binding that must be preserved verbatim even when it
	// looks dead (the front end knows it is read reflectively).
	FlagKeep
)

// Has reports whether the flag is set.
func (m Meta) Has(f Flag) bool { return m.flags&f != 0 }

// WithFlag returns a copy with f set.
func (m Meta) WithFlag(f Flag) Meta {
	m.flags |= f
	return m
}

// WithoutFlag returns a copy with f cleared.
func (m Meta) WithoutFlag(f Flag) Meta {
	m.flags &^= f
	return m
}

// Flags returns the raw flag set (for the codec).
func (m Meta) Flags() Flag { return m.flags }

// WithFlags returns a copy with the raw flag set replaced (for the codec).
func (m Meta) WithFlags(f Flag) Meta {
	m.flags = f
	return m
}

// Folded returns the precomputed byte rendering of a constant binary
// literal, or nil. Callers must treat the slice as immutable.
func (m Meta) Folded() []byte { return m.folded }

// WithFolded returns a copy carrying the precomputed bytes. The slice is
// copied so later mutation of b cannot leak into the tree.
func (m Meta) WithFolded(b []byte) Meta {
	m.folded = append([]byte(nil), b...)
	return m
}

// IsZero reports whether the bag carries nothing.
func (m Meta) IsZero() bool { return m.flags == 0 && m.folded == nil }
