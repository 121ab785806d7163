package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/baechuer/cityevents/services/nearby-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type fakeClock struct{ t time.Time }

func (c fakeClock) Now() time.Time { return c.t }

func mustItem(t *testing.T, id, name string, cats ...string) *domain.Item {
	t.Helper()
	it, err := domain.NewItemBuilder().ID(id).Name(name).Categories(cats...).Build()
	require.NoError(t, err)
	return it
}

func TestItemStore_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("first_write_wins", func(t *testing.T) {
		s := NewItemStore()
		require.NoError(t, s.Put(ctx, mustItem(t, "A", "first", "Music")))
		require.NoError(t, s.Put(ctx, mustItem(t, "A", "second", "Sports")))

		got, err := s.Get(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name)
		assert.Equal(t, []string{"Music"}, got.Categories.Sorted())
		assert.Equal(t, 1, s.Len())
	})

	t.Run("stored_copy_is_isolated", func(t *testing.T) {
		s := NewItemStore()
		it := mustItem(t, "A", "x", "Music")
		require.NoError(t, s.Put(ctx, it))
		it.Categories.Add("Film")

		got, _ := s.Get(ctx, "A")
		got.Categories.Add("Arts")

		cats, err := s.GetCategories(ctx, "A")
		require.NoError(t, err)
		assert.Equal(t, []string{"Music"}, cats.Sorted())
	})

	t.Run("empty_id", func(t *testing.T) {
		err := NewItemStore().Put(ctx, &domain.Item{})
		assert.True(t, domain.HasCode(err, domain.CodeValidation))
	})

	t.Run("concurrent_put_single_row", func(t *testing.T) {
		s := NewItemStore()
		var g errgroup.Group
		for i := 0; i < 64; i++ {
			name := fmt.Sprintf("writer-%d", i)
			g.Go(func() error {
				it, err := domain.NewItemBuilder().ID("A").Name(name).Categories("Music").Build()
				if err != nil {
					return err
				}
				return s.Put(ctx, it)
			})
		}
		require.NoError(t, g.Wait())
		assert.Equal(t, 1, s.Len())
		cats, err := s.GetCategories(ctx, "A")
		require.NoError(t, err)
		assert.Len(t, cats, 1)
	})
}

func TestItemStore_Lookups(t *testing.T) {
	ctx := context.Background()
	s := NewItemStore()
	require.NoError(t, s.Put(ctx, mustItem(t, "A", "a")))
	require.NoError(t, s.Put(ctx, mustItem(t, "B", "b", "Film")))

	_, err := s.Get(ctx, "missing")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))

	many, err := s.GetMany(ctx, []string{"A", "missing", "B"})
	require.NoError(t, err)
	assert.Len(t, many, 2)

	cats, err := s.GetCategories(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = s.GetCategories(ctx, "missing")
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))
}

func newHistory(t *testing.T) (*HistoryStore, *ItemStore) {
	t.Helper()
	users := NewUserRepo()
	require.NoError(t, users.Upsert(context.Background(), domain.User{ID: "1111", FirstName: "John", LastName: "Smith"}))
	items := NewItemStore()
	return NewHistoryStore(users, items, fakeClock{t: time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)}), items
}

func TestHistoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("add_twice_one_pair", func(t *testing.T) {
		h, _ := newHistory(t)
		applied, err := h.Add(ctx, "1111", []string{"X"})
		require.NoError(t, err)
		assert.Equal(t, []string{"X"}, applied)

		applied, err = h.Add(ctx, "1111", []string{"X"})
		require.NoError(t, err)
		assert.Empty(t, applied)

		ids, err := h.ListItemIDs(ctx, "1111")
		require.NoError(t, err)
		assert.Equal(t, []string{"X"}, ids)
	})

	t.Run("remove_never_added_is_noop", func(t *testing.T) {
		h, _ := newHistory(t)
		applied, err := h.Remove(ctx, "1111", []string{"X"})
		require.NoError(t, err)
		assert.Empty(t, applied)
	})

	t.Run("dangling_favorite_resolves_after_put", func(t *testing.T) {
		h, items := newHistory(t)
		_, err := h.Add(ctx, "1111", []string{"Y"})
		require.NoError(t, err)

		listed, err := h.ListItems(ctx, "1111")
		require.NoError(t, err)
		assert.Empty(t, listed)

		require.NoError(t, items.Put(ctx, mustItem(t, "Y", "late")))
		listed, err = h.ListItems(ctx, "1111")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "late", listed[0].Name)
	})

	t.Run("unknown_user", func(t *testing.T) {
		h, _ := newHistory(t)
		_, err := h.Add(ctx, "nobody", []string{"X"})
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
	})

	t.Run("cancelled_context", func(t *testing.T) {
		h, _ := newHistory(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		applied, err := h.Add(cctx, "1111", []string{"X", "Y"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, domain.HasCode(err, domain.CodeStoreUnavailable))
		assert.Empty(t, applied)

		removed, err := h.Remove(cctx, "1111", []string{"X"})
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, domain.HasCode(err, domain.CodeStoreUnavailable))
		assert.Empty(t, removed)
	})

	t.Run("concurrent_duplicates", func(t *testing.T) {
		h, _ := newHistory(t)
		var g errgroup.Group
		for i := 0; i < 32; i++ {
			g.Go(func() error {
				_, err := h.Add(ctx, "1111", []string{"X", "Y"})
				return err
			})
		}
		require.NoError(t, g.Wait())
		ids, err := h.ListItemIDs(ctx, "1111")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"X", "Y"}, ids)
	})
}
