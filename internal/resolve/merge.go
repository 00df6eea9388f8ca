package resolve

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/roterski/basisgo/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// mergeContributions folds the per-alias dependency and path contributions
// of the closure, in closure order, into one dependency map and one sorted
// path set. A coordinate declared by several aliases resolves to the
// version of the alias latest in the order, which in post-order is the one
// closest to the requested target.
func mergeContributions(order []string, aliases map[string]*config.Alias) (map[string]string, []string) {
	deps := make(map[string]string)
	pathSet := make(map[string]struct{})

	for _, id := range order {
		alias := aliases[id]
		for coord, version := range alias.ExtraDeps {
			deps[coord] = version
		}
		for _, p := range alias.ExtraPaths {
			pathSet[p] = struct{}{}
		}
	}

	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return deps, paths
}

// WithAliasKeys returns a derived basis with the given alias's declared
// keys shallow-merged onto it: the alias's metadata lands in Keys, where it
// overrides any basis key of the same name, and a non-empty alias root
// replaces the basis root. A relative alias root is resolved against the
// basis root first. The receiver is left untouched. Build backends use
// this to materialize their target alias's own settings (output path,
// artifact name, and so on) before acting on the basis.
func (b *Basis) WithAliasKeys(id string) (*Basis, error) {
	alias, ok := b.Aliases[id]
	if !ok {
		return nil, &ProgrammingError{Message: fmt.Sprintf("alias %q not present in basis alias map", id)}
	}

	keys := make(map[string]cty.Value, len(b.Keys)+len(alias.Meta))
	for k, v := range b.Keys {
		keys[k] = v
	}
	for k, v := range alias.Meta {
		keys[k] = v
	}

	derived := *b
	derived.Keys = keys
	if alias.Root != "" {
		derived.Root = resolveRoot(b.Root, alias.Root)
	}
	return &derived, nil
}

// resolveRoot resolves an alias root against the project root. Absolute
// alias roots stand alone; relative ones are anchored below the project
// root when one is set.
func resolveRoot(projectRoot, aliasRoot string) string {
	if filepath.IsAbs(aliasRoot) || projectRoot == "" {
		return aliasRoot
	}
	return filepath.Join(projectRoot, aliasRoot)
}

// AliasRoot returns the given alias's filesystem root resolved against the
// basis root, falling back to the basis root itself when the alias
// declares none. An unknown id is an internal invariant violation.
func (b *Basis) AliasRoot(id string) (string, error) {
	alias, ok := b.Aliases[id]
	if !ok {
		return "", &ProgrammingError{Message: fmt.Sprintf("alias %q not present in basis alias map", id)}
	}
	if alias.Root == "" {
		return b.Root, nil
	}
	return resolveRoot(b.Root, alias.Root), nil
}

// StringKey returns the named basis key as a string. The second return is
// false when the key is absent or not a string.
func (b *Basis) StringKey(name string) (string, bool) {
	v, ok := b.Keys[name]
	if !ok || v.IsNull() || v.Type() != cty.String {
		return "", false
	}
	return v.AsString(), true
}

// SubsetPaths returns the extra paths contributed only by the given subset
// of the closure, sorted and deduplicated. Callers use it to obtain a
// build target's own path set rather than the whole closure's. An id
// missing from the alias map is an internal invariant violation: subsets
// are drawn from an already-validated closure.
func (b *Basis) SubsetPaths(ids []string) ([]string, error) {
	pathSet := make(map[string]struct{})
	for _, id := range ids {
		alias, ok := b.Aliases[id]
		if !ok {
			return nil, &ProgrammingError{Message: fmt.Sprintf("alias %q not present in basis alias map", id)}
		}
		for _, p := range alias.ExtraPaths {
			pathSet[p] = struct{}{}
		}
	}

	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}
