package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/qa-forum-api/internal/logging"
)

type item struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
	})
	return New(client, 0, logging.Discard()), mr
}

func TestStore_SetGetInvalidate(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SetJSON(ctx, CategoryKey(1), item{ID: 1, Title: "General"}))
	assert.True(t, mr.Exists("category:1"))
	assert.Equal(t, DefaultTTL, mr.TTL("category:1"))

	var got item
	hit, err := store.GetJSON(ctx, CategoryKey(1), &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "General", got.Title)

	require.NoError(t, store.Invalidate(ctx, CategoryKey(1), CategoryKey(2)))
	hit, err = store.GetJSON(ctx, CategoryKey(1), &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestStore_DecodeError(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set("tag:1", "not json"))

	var got item
	hit, err := store.GetJSON(context.Background(), TagKey(1), &got)
	assert.False(t, hit)
	assert.Error(t, err)
}

func TestAside(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	calls := 0
	load := func() (*item, error) {
		calls++
		return &item{ID: 7, Title: "go"}, nil
	}

	first, err := Aside(ctx, store, TagKey(7), load)
	require.NoError(t, err)
	second, err := Aside(ctx, store, TagKey(7), load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAside_LoadErrorIsNotCached(t *testing.T) {
	store, mr := newStore(t)
	boom := errors.New("boom")

	_, err := Aside(context.Background(), store, TagKey(8), func() (*item, error) {
		return nil, boom
	})

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("tag:8"))
}

func TestAside_RedisDownFallsThrough(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	got, err := Aside(context.Background(), store, TagKey(9), func() (*item, error) {
		return &item{ID: 9}, nil
	})

	require.NoError(t, err)
	assert.EqualValues(t, 9, got.ID)
}

func TestNilStore(t *testing.T) {
	var store *Store
	ctx := context.Background()

	hit, err := store.GetJSON(ctx, "k", &item{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, store.SetJSON(ctx, "k", item{}))
	assert.NoError(t, store.Invalidate(ctx, "k"))
	assert.NoError(t, store.Close())

	got, err := Aside(ctx, store, "k", func() (*item, error) { return &item{ID: 1}, nil })
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ID)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := Connect(context.Background(), mr.Addr(), logging.Discard())
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	mr.Close()
	_, err = Connect(context.Background(), mr.Addr(), logging.Discard())
	assert.Error(t, err)
}
