package passes

import (
	"github.com/exform/exform/internal/pipeline"
)

// Default is the canonical pass order. It is a fixed list, maintained here,
// with three hard constraints:
//
//  1. underscore-refs runs first: reference repair must precede any pass
//     that consults the use-set, or stale `_x` reads poison liveness.
//  2. every binder-renaming pass (binder-names, preferred-names) runs
//     before underscore-unused: name first, judge liveness after.
//  3. collapse-bind can leave single-statement blocks behind, so
//     block-flatten runs again after it as a safety net; passes are
//     idempotent precisely so they can appear twice.
func Default() []pipeline.Pass {
	return []pipeline.Pass{
		UnderscoreRefs{},
		BlockFlatten{},
		PatNorm{},
		BinderNames{},
		PreferredNames{},
		CollapseBind{},
		BlockFlatten{},
		ResultWrap{},
		AliasInject{},
		BinFold{},
		Underscore{},
	}
}
