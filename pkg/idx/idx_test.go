package idx_test

import (
	"testing"
	"time"

	"github.com/lockbridge/authd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratesSortableIDs(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.NotEqual(t, a, b)

	// Monotonic entropy keeps same-millisecond IDs ordered.
	require.Less(t, a.String(), b.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trips a generated id", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		for _, in := range []string{"", "   ", "not-a-ulid", "0000"} {
			_, err := idx.Parse(in)
			require.ErrorIs(t, err, idx.ErrInvalid)
		}
	})
}

func TestTimeEmbedsCreationInstant(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	id := idx.NewAt(at)

	require.Equal(t, at, id.Time())
}

func TestMustParsePanicsOnGarbage(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { idx.MustParse("garbage") })
}
