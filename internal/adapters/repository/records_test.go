package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/scoutboard/internal/domain/model"
)

func TestMemoryRecords_AppendAndAll(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecords()

	require.Equal(t, 0, store.Count(ctx))
	require.Empty(t, store.All(ctx))

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Append(ctx, model.Record{"teamNumber": fmt.Sprint(i)}))
	}

	all := store.All(ctx)
	require.Len(t, all, 3)
	for i, rec := range all {
		assert.Equal(t, fmt.Sprint(i), rec["teamNumber"], "insertion order must be preserved")
	}

	// Mutating the snapshot slice must not affect the store.
	all[0] = model.Record{"teamNumber": "x"}
	assert.Equal(t, "0", store.All(ctx)[0]["teamNumber"])
}

func TestMemoryRecords_DeleteWhere(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecords()

	require.NoError(t, store.Append(ctx, model.Record{"_savedAt": "t1", "teamNumber": "254"}))
	require.NoError(t, store.Append(ctx, model.Record{"_savedAt": "t2", "teamNumber": "254"}))
	require.NoError(t, store.Append(ctx, model.Record{"_savedAt": "t1", "teamNumber": "1678"}))
	require.NoError(t, store.Append(ctx, model.Record{"teamNumber": "118"}))

	removed := store.DeleteWhere(ctx, "_savedAt", "t1")
	assert.Equal(t, 2, removed, "every matching record is removed")
	require.Equal(t, 2, store.Count(ctx))
	assert.Equal(t, "t2", store.All(ctx)[0]["_savedAt"])

	assert.Equal(t, 0, store.DeleteWhere(ctx, "_savedAt", "missing"))
	assert.Equal(t, 2, store.Count(ctx))

	// Records lacking the key never match, even against nil.
	assert.Equal(t, 0, store.DeleteWhere(ctx, "_savedAt", nil))
}

func TestMemoryRecords_DeleteWhereNumbers(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecords()

	require.NoError(t, store.Append(ctx, model.Record{"_savedAt": json.Number("1")}))
	require.NoError(t, store.Append(ctx, model.Record{"_savedAt": json.Number("2")}))

	assert.Equal(t, 1, store.DeleteWhere(ctx, "_savedAt", json.Number("1.0")))
	assert.Equal(t, 0, store.DeleteWhere(ctx, "_savedAt", "2"), "strings never equal numbers")
	assert.Equal(t, 1, store.Count(ctx))
}

func TestMemoryRecords_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecords()

	require.NoError(t, store.Append(ctx, model.Record{"a": "b"}))
	store.Clear(ctx)

	assert.Equal(t, 0, store.Count(ctx))
	assert.Empty(t, store.All(ctx))
}

func TestMemoryRecords_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRecords()

	const writers, perWriter = 8, 250
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_ = store.Append(ctx, model.Record{"w": w, "i": i})
				_ = store.All(ctx)
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, writers*perWriter, store.Count(ctx))
}
