package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStack(t *testing.T) {
	t.Parallel()

	s := NewStack("dev", "ci", "dev")
	assert.Equal(t, []string{"dev", "ci"}, s.Names())
	assert.Equal(t, 2, s.Len())
}

func TestAppend(t *testing.T) {
	t.Parallel()

	t.Run("appends at the back in order", func(t *testing.T) {
		s := NewStack("dev").Append("ci", "release")
		assert.Equal(t, []string{"dev", "ci", "release"}, s.Names())
	})

	t.Run("skips names already present", func(t *testing.T) {
		s := NewStack("dev", "ci").Append("ci", "release")
		assert.Equal(t, []string{"dev", "ci", "release"}, s.Names())
	})

	t.Run("does not mutate the receiver", func(t *testing.T) {
		s := NewStack("dev")
		_ = s.Append("ci")
		assert.Equal(t, []string{"dev"}, s.Names())
	})
}

func TestPrepend(t *testing.T) {
	t.Parallel()

	t.Run("prepends at the front in order", func(t *testing.T) {
		s := NewStack("dev").Prepend("base", "ci")
		assert.Equal(t, []string{"base", "ci", "dev"}, s.Names())
	})

	t.Run("existing names keep their position", func(t *testing.T) {
		s := NewStack("dev", "ci").Prepend("ci", "base")
		assert.Equal(t, []string{"base", "dev", "ci"}, s.Names())
	})

	t.Run("duplicates within the argument list collapse", func(t *testing.T) {
		s := Stack{}.Prepend("base", "base")
		assert.Equal(t, []string{"base"}, s.Names())
	})
}

func TestContains(t *testing.T) {
	t.Parallel()

	s := NewStack("dev", "ci")
	assert.True(t, s.Contains("dev"))
	assert.False(t, s.Contains("release"))
	assert.False(t, Stack{}.Contains("dev"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	t.Run("most recently appended wins", func(t *testing.T) {
		s := NewStack("dev", "release")
		accepted := map[string]bool{"dev": true, "release": true}

		name, ok := s.Match(func(n string) bool { return accepted[n] })
		require.True(t, ok)
		assert.Equal(t, "release", name)
	})

	t.Run("prepended profile has lowest precedence", func(t *testing.T) {
		s := NewStack("release").Prepend("dev")
		accepted := map[string]bool{"dev": true, "release": true}

		name, ok := s.Match(func(n string) bool { return accepted[n] })
		require.True(t, ok)
		assert.Equal(t, "release", name)
	})

	t.Run("no match", func(t *testing.T) {
		s := NewStack("dev")
		_, ok := s.Match(func(n string) bool { return false })
		assert.False(t, ok)
	})

	t.Run("empty stack never matches", func(t *testing.T) {
		_, ok := Stack{}.Match(func(n string) bool { return true })
		assert.False(t, ok)
	})
}
