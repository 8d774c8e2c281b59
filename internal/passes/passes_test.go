package passes

import (
	"testing"
)

func TestDefault_Ordering(t *testing.T) {
	names := []string{}
	for _, p := range Default() {
		names = append(names, p.Name())
	}

	index := func(name string) int {
		last := -1
		for i, n := range names {
			if n == name {
				last = i
			}
		}
		if last < 0 {
			t.Fatalf("pass %q missing from the default order", name)
		}
		return last
	}

	if names[0] != "underscore-refs" {
		t.Errorf("first pass = %q, want underscore-refs", names[0])
	}
	if names[len(names)-1] != "underscore-unused" {
		t.Errorf("last pass = %q, want underscore-unused", names[len(names)-1])
	}
	if index("binder-names") > index("underscore-unused") {
		t.Error("binder renaming must precede liveness judgement")
	}
	if index("preferred-names") > index("underscore-unused") {
		t.Error("preferred-names must precede liveness judgement")
	}
	if index("block-flatten") < index("collapse-bind") {
		t.Error("block-flatten must run again after collapse-bind")
	}
}

func TestDefault_UniqueNamesExceptFlatten(t *testing.T) {
	seen := map[string]int{}
	for _, p := range Default() {
		seen[p.Name()]++
	}
	for name, count := range seen {
		if count > 1 && name != "block-flatten" {
			t.Errorf("pass %q appears %d times", name, count)
		}
	}
}
