package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

func newCartRepo(t *testing.T) (*CartRepository, *testContext) {
	t.Helper()
	db := newTestDB(t)
	return NewCartRepository(db, testTimeProvider(), testLogger()), &testContext{db: db, ctx: context.Background()}
}

func TestCartRepositoryAddItem(t *testing.T) {
	repo, tc := newCartRepo(t)
	user := seedUser(t, tc.db, 111, 0, true)
	product := seedProduct(t, tc.db, "Товар 1", 250000, true)

	t.Run("First add inserts a line", func(t *testing.T) {
		require.NoError(t, repo.AddItem(tc.ctx, user.ID, product.ID, 1))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, uint32(1), lines[0].Item.Quantity)
	})

	t.Run("Second add bumps the quantity", func(t *testing.T) {
		require.NoError(t, repo.AddItem(tc.ctx, user.ID, product.ID, 2))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, uint32(3), lines[0].Item.Quantity)
	})

	t.Run("Zero quantity is rejected", func(t *testing.T) {
		assert.ErrorIs(t, repo.AddItem(tc.ctx, user.ID, product.ID, 0), errs.ErrValidation)
	})
}

func TestCartRepositoryListByUser(t *testing.T) {
	repo, tc := newCartRepo(t)
	user := seedUser(t, tc.db, 111, 0, true)
	active := seedProduct(t, tc.db, "Активный", 100000, true)
	inactive := seedProduct(t, tc.db, "Снятый", 200000, false)

	require.NoError(t, repo.AddItem(tc.ctx, user.ID, active.ID, 2))
	require.NoError(t, repo.AddItem(tc.ctx, user.ID, inactive.ID, 1))

	lines, err := repo.ListByUser(tc.ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	byProduct := map[uint64]bool{}
	for _, line := range lines {
		require.NotNil(t, line.Product)
		byProduct[line.Product.ID] = line.Product.IsActive
	}
	assert.True(t, byProduct[active.ID])
	assert.False(t, byProduct[inactive.ID])

	t.Run("Empty cart yields an empty slice", func(t *testing.T) {
		lines, err := repo.ListByUser(tc.ctx, 9999)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})
}

func TestCartRepositorySetQuantity(t *testing.T) {
	repo, tc := newCartRepo(t)
	user := seedUser(t, tc.db, 111, 0, true)
	product := seedProduct(t, tc.db, "Товар 1", 100000, true)

	require.NoError(t, repo.AddItem(tc.ctx, user.ID, product.ID, 1))

	t.Run("Updates the quantity", func(t *testing.T) {
		require.NoError(t, repo.SetQuantity(tc.ctx, user.ID, product.ID, 5))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, uint32(5), lines[0].Item.Quantity)
	})

	t.Run("Zero removes the line", func(t *testing.T) {
		require.NoError(t, repo.SetQuantity(tc.ctx, user.ID, product.ID, 0))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("Missing line", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetQuantity(tc.ctx, user.ID, product.ID, 2), errs.ErrCartItemNotFound)
	})
}

func TestCartRepositoryRemoveAndClear(t *testing.T) {
	repo, tc := newCartRepo(t)
	user := seedUser(t, tc.db, 111, 0, true)
	first := seedProduct(t, tc.db, "Товар 1", 100000, true)
	second := seedProduct(t, tc.db, "Товар 2", 200000, true)

	require.NoError(t, repo.AddItem(tc.ctx, user.ID, first.ID, 1))
	require.NoError(t, repo.AddItem(tc.ctx, user.ID, second.ID, 1))

	t.Run("RemoveItem deletes one line", func(t *testing.T) {
		require.NoError(t, repo.RemoveItem(tc.ctx, user.ID, first.ID))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, second.ID, lines[0].Item.ProductID)
	})

	t.Run("RemoveItem on a missing line", func(t *testing.T) {
		assert.ErrorIs(t, repo.RemoveItem(tc.ctx, user.ID, first.ID), errs.ErrCartItemNotFound)
	})

	t.Run("ClearForUser empties the cart", func(t *testing.T) {
		require.NoError(t, repo.ClearForUser(tc.ctx, user.ID))

		lines, err := repo.ListByUser(tc.ctx, user.ID)
		require.NoError(t, err)
		assert.Empty(t, lines)

		// Clearing an already empty cart is not an error
		assert.NoError(t, repo.ClearForUser(tc.ctx, user.ID))
	})
}
