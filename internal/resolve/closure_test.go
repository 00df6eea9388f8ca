package resolve

import (
	"errors"
	"testing"

	"github.com/roterski/basisgo/internal/config"
	"github.com/roterski/basisgo/internal/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// aliasMap builds an alias map from id -> required ids, for tests that only
// care about graph shape.
func aliasMap(edges map[string][]string) map[string]*config.Alias {
	aliases := make(map[string]*config.Alias, len(edges))
	for id, targets := range edges {
		alias := &config.Alias{ID: id}
		for _, target := range targets {
			alias.Require = append(alias.Require, config.DirectRef(target))
		}
		aliases[id] = alias
	}
	return aliases
}

func TestClosureOrder_DependencyBeforeDependent(t *testing.T) {
	t.Parallel()

	aliases := aliasMap(map[string][]string{
		"a": {"b"},
		"b": {},
	})

	order, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestClosureOrder_EachAliasAppearsOnce(t *testing.T) {
	t.Parallel()

	// Diamond: a -> b, a -> c, both b and c -> d.
	aliases := aliasMap(map[string][]string{
		"a": {"b", "c"},
		"b": {"d"},
		"c": {"d"},
		"d": {},
	})

	order, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "b", "c", "a"}, order)
}

func TestClosureOrder_SeedOrderIsPreserved(t *testing.T) {
	t.Parallel()

	aliases := aliasMap(map[string][]string{
		"x": {},
		"y": {},
	})

	order, err := closureOrder([]string{"y", "x"}, aliases, profile.Stack{})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "x"}, order)
}

func TestClosureOrder_DeclaredRequireOrderDrivesTraversal(t *testing.T) {
	t.Parallel()

	aliases := aliasMap(map[string][]string{
		"a": {"c", "b"},
		"b": {},
		"c": {},
	})

	order, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, order)
}

func TestClosureOrder_ProfileSelectsVariant(t *testing.T) {
	t.Parallel()

	aliases := aliasMap(map[string][]string{
		"c": {},
		"d": {},
	})
	aliases["a"] = &config.Alias{
		ID: "a",
		Require: []config.Ref{
			config.ProfileRef(map[string]string{"release": "d"}, "c", true),
		},
	}

	t.Run("default without profiles", func(t *testing.T) {
		order, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, order)
	})

	t.Run("release profile substitutes the variant", func(t *testing.T) {
		order, err := closureOrder([]string{"a"}, aliases, profile.NewStack("release"))
		require.NoError(t, err)
		assert.Equal(t, []string{"d", "a"}, order)
	})
}

func TestClosureOrder_MissingAlias(t *testing.T) {
	t.Parallel()

	t.Run("missing seed", func(t *testing.T) {
		_, err := closureOrder([]string{"nope"}, aliasMap(nil), profile.Stack{})
		require.Error(t, err)

		var missing *MissingAliasError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "nope", missing.ID)
		assert.Empty(t, missing.RequiredBy)
	})

	t.Run("missing require target names the referencing alias", func(t *testing.T) {
		aliases := aliasMap(map[string][]string{"a": {"ghost"}})

		_, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
		require.Error(t, err)

		var missing *MissingAliasError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "ghost", missing.ID)
		assert.Equal(t, "a", missing.RequiredBy)
	})
}

func TestClosureOrder_CycleDetection(t *testing.T) {
	t.Parallel()

	t.Run("direct cycle", func(t *testing.T) {
		aliases := aliasMap(map[string][]string{
			"a": {"b"},
			"b": {"a"},
		})

		_, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
		require.Error(t, err)

		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "b", "a"}, cycle.Path)
	})

	t.Run("self reference", func(t *testing.T) {
		aliases := aliasMap(map[string][]string{"a": {"a"}})

		_, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "a"}, cycle.Path)
	})

	t.Run("cycle path excludes the clean prefix", func(t *testing.T) {
		// x is not part of the cycle, only the entry point into it.
		aliases := aliasMap(map[string][]string{
			"x": {"a"},
			"a": {"b"},
			"b": {"c"},
			"c": {"a"},
		})

		_, err := closureOrder([]string{"x"}, aliases, profile.Stack{})
		var cycle *CycleError
		require.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "b", "c", "a"}, cycle.Path)
	})

	t.Run("shared node revisited across branches is not a cycle", func(t *testing.T) {
		aliases := aliasMap(map[string][]string{
			"a": {"b", "c"},
			"b": {"d"},
			"c": {"d"},
			"d": {},
		})

		_, err := closureOrder([]string{"a"}, aliases, profile.Stack{})
		assert.NoError(t, err)
	})
}
