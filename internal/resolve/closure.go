package resolve

import (
	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/profile"
)

// walker carries the state of one depth-first traversal over the
// require-graph. A walker is used for exactly one resolution and then
// discarded; nothing it caches outlives the call.
type walker struct {
	aliases  map[string]*config.Alias
	profiles profile.Stack

	// visiting marks nodes on the active recursion stack; hitting one of
	// these again means the graph has a cycle.
	visiting map[string]bool
	// visited marks nodes whose subtree is fully recorded.
	visited map[string]bool
	// path mirrors the active recursion stack in order, for cycle reports.
	path []string
	// order accumulates the post-order result.
	order []string
}

// closureOrder computes the transitive closure of the seed set under
// resolved require-edges and returns it in post-order: every alias appears
// exactly once, after all the aliases it requires. Traversal follows seed
// order, then each alias's declared require order, so the result is fully
// deterministic for a given configuration and profile stack.
func closureOrder(seeds []string, aliases map[string]*config.Alias, profiles profile.Stack) ([]string, error) {
	w := &walker{
		aliases:  aliases,
		profiles: profiles,
		visiting: make(map[string]bool),
		visited:  make(map[string]bool),
	}

	for _, seed := range seeds {
		if err := w.visit(seed, ""); err != nil {
			return nil, err
		}
	}
	return w.order, nil
}

// visit descends into one alias. requiredBy names the referencing alias for
// error reports; it is empty for seeds.
func (w *walker) visit(id string, requiredBy string) error {
	if w.visiting[id] {
		return &CycleError{Path: cyclePath(w.path, id)}
	}
	if w.visited[id] {
		return nil
	}

	alias, ok := w.aliases[id]
	if !ok {
		return &MissingAliasError{ID: id, RequiredBy: requiredBy}
	}

	w.visiting[id] = true
	w.path = append(w.path, id)

	for _, ref := range alias.Require {
		target, err := ResolveRef(id, ref, w.profiles)
		if err != nil {
			return err
		}
		if err := w.visit(target, id); err != nil {
			return err
		}
	}

	w.path = w.path[:len(w.path)-1]
	delete(w.visiting, id)
	w.visited[id] = true
	w.order = append(w.order, id)
	return nil
}

// cyclePath trims the recursion path to the cycle itself and closes the
// loop, e.g. a traversal path [x a b c] revisiting "a" yields [a b c a].
func cyclePath(path []string, id string) []string {
	start := 0
	for i, p := range path {
		if p == id {
			start = i
			break
		}
	}
	cycle := make([]string, 0, len(path)-start+1)
	cycle = append(cycle, path[start:]...)
	cycle = append(cycle, id)
	return cycle
}
