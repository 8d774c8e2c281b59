// Package pipeline runs an ordered list of rewrite passes over one
// compilation unit. Ordering is a fixed, documented list owned by the
// integrator; there is no dynamic reordering or dependency inference.
package pipeline

import (
	"reflect"

	"github.com/google/uuid"

	"github.com/exform/exform/internal/config"
	"github.com/exform/exform/internal/diagnostics"
	"github.com/exform/exform/internal/ir"
)

// Pass is a single tree-to-tree rewrite. Run must be referentially
// transparent: same input tree and config, same output tree, no state
// carried between invocations. A pass signals "does not apply" by returning
// its input; it never errors.
type Pass interface {
	Name() string
	Run(root ir.Node, cfg *config.Config) ir.Node
}

// Result is the outcome of one pipeline run.
type Result struct {
	Root  ir.Node
	RunID string
	Notes []diagnostics.Note
}

// Pipeline applies passes left to right, once per compilation unit.
type Pipeline struct {
	cfg    *config.Config
	passes []Pass
}

// New builds a pipeline over the given pass order.
func New(cfg *config.Config, passes ...Pass) *Pipeline {
	return &Pipeline{cfg: cfg, passes: passes}
}

// Run rewrites root. Each pass's output is the next pass's only input; the
// passes share nothing beyond the node metadata they read and write.
func (p *Pipeline) Run(root ir.Node) Result {
	res := Result{Root: root}
	if p.cfg.Debug {
		res.RunID = uuid.New().String()
	}
	for _, pass := range p.passes {
		if p.cfg.PassDisabled(pass.Name()) {
			if p.cfg.Debug {
				res.Notes = append(res.Notes, diagnostics.Notef(pass.Name(), ir.Pos{}, "disabled"))
			}
			continue
		}
		before := res.Root
		res.Root = pass.Run(res.Root, p.cfg)
		if p.cfg.Debug {
			// DeepEqual is fine here: debug only, trees are modest.
			if reflect.DeepEqual(before, res.Root) {
				res.Notes = append(res.Notes, diagnostics.Notef(pass.Name(), ir.Pos{}, "no change"))
			} else {
				res.Notes = append(res.Notes, diagnostics.Notef(pass.Name(), ir.Pos{}, "rewrote tree"))
			}
		}
	}
	return res
}
