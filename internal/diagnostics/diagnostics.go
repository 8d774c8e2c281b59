// Package diagnostics carries per-pass notes surfaced in debug mode. The
// rewrite core itself never errors: a pass that cannot apply safely simply
// returns its input, and that is not a reportable condition.
package diagnostics

import (
	"fmt"

	"github.com/exform/exform/internal/ir"
)

// Note is one debug observation from a pipeline run.
type Note struct {
	Pass    string
	Pos     ir.Pos
	Message string
}

// Notef builds a Note with a formatted message.
func Notef(pass string, pos ir.Pos, format string, args ...interface{}) Note {
	return Note{Pass: pass, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func (n Note) String() string {
	if n.Pos.IsZero() {
		return fmt.Sprintf("[%s] %s", n.Pass, n.Message)
	}
	return fmt.Sprintf("[%s] %s:%d:%d %s", n.Pass, n.Pos.File, n.Pos.Line, n.Pos.Col, n.Message)
}
