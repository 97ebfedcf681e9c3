package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/scoutboard/internal/domain/model"
)

func entry(user string, score int64) model.Entry {
	return model.Entry{Username: user, Score: score, Timestamp: "2024-01-01T00:00:00Z"}
}

func TestMemoryBoard_BestScorePerUser(t *testing.T) {
	ctx := context.Background()
	board := NewMemoryBoard()

	out, err := board.Submit(ctx, entry("ana", 50))
	require.NoError(t, err)
	assert.Equal(t, Inserted, out)

	out, err = board.Submit(ctx, entry("ana", 40))
	require.NoError(t, err)
	assert.Equal(t, Discarded, out, "lower score is ignored")

	out, err = board.Submit(ctx, entry("ana", 50))
	require.NoError(t, err)
	assert.Equal(t, Discarded, out, "tie is ignored")

	replacement := entry("ana", 90)
	replacement.Timestamp = "2024-01-02T00:00:00Z"
	out, err = board.Submit(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, Replaced, out)

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, replacement, top[0])

	// Usernames are case-sensitive.
	out, err = board.Submit(ctx, entry("Ana", 10))
	require.NoError(t, err)
	assert.Equal(t, Inserted, out)
	assert.Equal(t, 2, board.Count(ctx))
}

func TestMemoryBoard_Ordering(t *testing.T) {
	ctx := context.Background()
	board := NewMemoryBoard()

	for _, e := range []model.Entry{entry("a", 10), entry("b", 30), entry("c", 20), entry("d", 30)} {
		_, err := board.Submit(ctx, e)
		require.NoError(t, err)
	}

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	names := make([]string, len(top))
	for i, e := range top {
		names[i] = e.Username
	}
	assert.Equal(t, []string{"b", "d", "c", "a"}, names, "score desc, ties by insertion order")

	top, err = board.Top(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	_, err = board.Top(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestMemoryBoard_CapacityTruncation(t *testing.T) {
	ctx := context.Background()
	board := NewMemoryBoard()
	require.Equal(t, 100, board.Capacity())

	// 101 distinct users; user-0 has the lowest score.
	for i := 0; i <= 100; i++ {
		_, err := board.Submit(ctx, entry(fmt.Sprintf("user-%d", i), int64(1000+i)))
		require.NoError(t, err)
	}
	require.Equal(t, 100, board.Count(ctx))

	top, err := board.Top(ctx, 200)
	require.NoError(t, err)
	require.Len(t, top, 100)
	for _, e := range top {
		assert.NotEqual(t, "user-0", e.Username)
	}
	assert.Equal(t, "user-100", top[0].Username)

	// A low score for a new user is inserted then immediately dropped.
	out, err := board.Submit(ctx, entry("late", 1))
	require.NoError(t, err)
	assert.Equal(t, Inserted, out)
	assert.Equal(t, 100, board.Count(ctx))
	top, _ = board.Top(ctx, 200)
	for _, e := range top {
		assert.NotEqual(t, "late", e.Username)
	}
}

func TestMemoryBoard_CustomCapacityAndClear(t *testing.T) {
	ctx := context.Background()
	board := NewMemoryBoard(WithCapacity(2), WithCapacity(0))
	require.Equal(t, 2, board.Capacity())

	for i := 0; i < 5; i++ {
		_, err := board.Submit(ctx, entry(fmt.Sprint(i), int64(i)))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, board.Count(ctx))

	board.Clear(ctx)
	assert.Equal(t, 0, board.Count(ctx))
	top, err := board.Top(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestMemoryBoard_RejectsEmptyUsername(t *testing.T) {
	board := NewMemoryBoard()
	_, err := board.Submit(context.Background(), entry("  ", 5))
	assert.ErrorIs(t, err, ErrEmptyUser)
}

func TestMemoryBoard_ConcurrentSubmissions(t *testing.T) {
	ctx := context.Background()
	board := NewMemoryBoard()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = board.Submit(ctx, entry("shared", int64(w*100+i)))
				_, _ = board.Top(ctx, 50)
			}
		}(w)
	}
	wg.Wait()

	top, err := board.Top(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(999), top[0].Score, "no lost update of the best score")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "replaced", Replaced.String())
	assert.Equal(t, "discarded", Discarded.String())
}
