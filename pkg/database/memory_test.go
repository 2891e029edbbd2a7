package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memoryFixture struct {
	ID     string `bson:"_id"`
	Title  string `bson:"title"`
	Author string `bson:"author_first_name"`
	Copies int    `bson:"total_copies"`
}

func seedMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()

	store := NewMemoryStore()
	ctx := context.Background()
	fixtures := []memoryFixture{
		{ID: "b1", Title: "The Go Programming Language", Author: "Alan", Copies: 3},
		{ID: "b2", Title: "Learning Go", Author: "Jon", Copies: 1},
		{ID: "b3", Title: "Distributed Systems", Author: "Andrew", Copies: 2},
	}
	for _, f := range fixtures {
		id, err := store.Insert(ctx, "books", f)
		require.NoError(t, err)
		require.Equal(t, f.ID, id)
	}
	return store
}

func TestMemoryStore_FindOne(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)
	ctx := context.Background()

	var got memoryFixture
	found, err := store.FindOne(ctx, "books", Query{Exact: map[string]any{"_id": "b2"}}, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Learning Go", got.Title)

	found, err = store.FindOne(ctx, "books", Query{Exact: map[string]any{"_id": "nope"}}, &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStore_FindSubstringIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)

	var got []memoryFixture
	err := store.Find(context.Background(), "books", Query{
		Substring: map[string]string{"title": "GO"},
		Sort:      "_id",
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b1", got[0].ID)
	assert.Equal(t, "b2", got[1].ID)
}

func TestMemoryStore_FindPrefix(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)

	var got []memoryFixture
	err := store.Find(context.Background(), "books", Query{
		Prefix: map[string]string{"author_first_name": "a"},
		Sort:   "author_first_name",
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alan", got[0].Author)
	assert.Equal(t, "Andrew", got[1].Author)
}

func TestMemoryStore_FindSortLimitOffset(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)

	var got []*memoryFixture
	err := store.Find(context.Background(), "books", Query{
		Sort:   "title",
		Limit:  2,
		Offset: 1,
	}, &got)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Learning Go", got[0].Title)
	assert.Equal(t, "The Go Programming Language", got[1].Title)
}

func TestMemoryStore_UpdateMergesFields(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)
	ctx := context.Background()

	ok, err := store.Update(ctx, "books", "b1", bson.M{"total_copies": 7})
	require.NoError(t, err)
	require.True(t, ok)

	var got memoryFixture
	found, err := store.FindOne(ctx, "books", Query{Exact: map[string]any{"_id": "b1"}}, &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7, got.Copies)
	assert.Equal(t, "The Go Programming Language", got.Title)

	ok, err = store.Update(ctx, "books", "missing", bson.M{"total_copies": 1})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()

	store := seedMemoryStore(t)
	ctx := context.Background()

	ok, err := store.Delete(ctx, "books", "b3")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Delete(ctx, "books", "b3")
	require.NoError(t, err)
	assert.False(t, ok)
}
