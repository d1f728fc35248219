package recipient_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/attendance-report/pkg/recipient"
)

func TestStore_Add(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed address", func(t *testing.T) {
		t.Parallel()

		s := recipient.NewStore()
		assert.ErrorIs(t, s.Add("not-an-email"), recipient.ErrInvalidFormat)
		assert.ErrorIs(t, s.Add(""), recipient.ErrInvalidFormat)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("accepts valid address", func(t *testing.T) {
		t.Parallel()

		s := recipient.NewStore()
		require.NoError(t, s.Add("a@b.com"))
		assert.Equal(t, []string{"a@b.com"}, s.List())
	})

	t.Run("rejects duplicate", func(t *testing.T) {
		t.Parallel()

		s := recipient.NewStore()
		require.NoError(t, s.Add("x@y.com"))
		assert.ErrorIs(t, s.Add("x@y.com"), recipient.ErrDuplicate)
		assert.ErrorIs(t, s.Add("  x@y.com "), recipient.ErrDuplicate)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()

		s := recipient.NewStore()
		for _, addr := range []string{"c@x.com", "a@x.com", "b@x.com"} {
			require.NoError(t, s.Add(addr))
		}
		assert.Equal(t, []string{"c@x.com", "a@x.com", "b@x.com"}, s.List())
	})
}

func TestStore_Remove(t *testing.T) {
	t.Parallel()

	s := recipient.NewStore()
	require.NoError(t, s.Add("a@x.com"))
	require.NoError(t, s.Add("b@x.com"))

	require.NoError(t, s.Remove("a@x.com"))
	assert.ErrorIs(t, s.Remove("a@x.com"), recipient.ErrNotFound)
	assert.False(t, s.Contains("a@x.com"))
	assert.Equal(t, []string{"b@x.com"}, s.List())
}

func TestStore_ListIsCopy(t *testing.T) {
	t.Parallel()

	s := recipient.NewStore()
	require.NoError(t, s.Add("a@x.com"))
	list := s.List()
	list[0] = "changed@x.com"
	assert.True(t, s.Contains("a@x.com"))
}
