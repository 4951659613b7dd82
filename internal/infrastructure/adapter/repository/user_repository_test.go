package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podmarket/shop-backend/internal/domain/entity"
	errs "github.com/podmarket/shop-backend/internal/domain/error"
)

func newUserRepo(t *testing.T) (*UserRepository, *testContext) {
	t.Helper()
	db := newTestDB(t)
	return NewUserRepository(db, testTimeProvider(), testLogger()), &testContext{db: db, ctx: context.Background()}
}

func TestUserRepositoryGet(t *testing.T) {
	repo, tc := newUserRepo(t)

	seeded := seedUser(t, tc.db, 111, 5000, true)

	t.Run("GetByID", func(t *testing.T) {
		user, err := repo.GetByID(tc.ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)
		assert.Equal(t, int64(111), user.TelegramID)
		assert.Equal(t, int64(5000), user.Balance())
		assert.True(t, user.IsVerified)
	})

	t.Run("GetByID miss", func(t *testing.T) {
		_, err := repo.GetByID(tc.ctx, 9999)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("GetByIDForUpdate", func(t *testing.T) {
		user, err := repo.GetByIDForUpdate(tc.ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)
	})

	t.Run("GetByTelegramID", func(t *testing.T) {
		user, err := repo.GetByTelegramID(tc.ctx, 111)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)

		_, err = repo.GetByTelegramID(tc.ctx, 222)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("GetByReferralCode", func(t *testing.T) {
		user, err := repo.GetByReferralCode(tc.ctx, seeded.ReferralCode)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)

		_, err = repo.GetByReferralCode(tc.ctx, "ref_nobody_00000000")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := repo.GetByUsername(tc.ctx, seeded.Username)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)

		_, err = repo.GetByUsername(tc.ctx, "ghost")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}

func TestUserRepositoryCreate(t *testing.T) {
	repo, tc := newUserRepo(t)
	tp := testTimeProvider()

	t.Run("Propagates the generated id", func(t *testing.T) {
		user, err := entity.NewUser(333, "petya", "Пётр", tp)
		require.NoError(t, err)

		require.NoError(t, repo.Create(tc.ctx, user))
		assert.NotZero(t, user.ID)

		loaded, err := repo.GetByID(tc.ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(333), loaded.TelegramID)
	})

	t.Run("Duplicate telegram id is rejected", func(t *testing.T) {
		dup, err := entity.NewUser(333, "petya2", "Пётр", tp)
		require.NoError(t, err)

		err = repo.Create(tc.ctx, dup)
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})
}

func TestUserRepositoryUpdateProfile(t *testing.T) {
	repo, tc := newUserRepo(t)
	seeded := seedUser(t, tc.db, 111, 0, false)

	user, err := repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	user.Username = "renamed"
	user.FirstName = "Иван Иванович"

	require.NoError(t, repo.UpdateProfile(tc.ctx, user))

	loaded, err := repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", loaded.Username)
	assert.Equal(t, "Иван Иванович", loaded.FirstName)

	t.Run("Missing row", func(t *testing.T) {
		ghost := *user
		ghost.ID = 9999
		assert.ErrorIs(t, repo.UpdateProfile(tc.ctx, &ghost), errs.ErrUserNotFound)
	})
}

func TestUserRepositorySetVerified(t *testing.T) {
	repo, tc := newUserRepo(t)
	seeded := seedUser(t, tc.db, 111, 0, false)

	require.NoError(t, repo.SetVerified(tc.ctx, seeded.ID, true))
	user, err := repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	assert.True(t, user.IsVerified)

	require.NoError(t, repo.SetVerified(tc.ctx, seeded.ID, false))
	user, err = repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	assert.False(t, user.IsVerified)

	assert.ErrorIs(t, repo.SetVerified(tc.ctx, 9999, true), errs.ErrUserNotFound)
}

func TestUserRepositoryDebit(t *testing.T) {
	repo, tc := newUserRepo(t)

	t.Run("Successful debit", func(t *testing.T) {
		seeded := seedUser(t, tc.db, 111, 10000, true)

		require.NoError(t, repo.Debit(tc.ctx, seeded.ID, 2500))
		assert.Equal(t, int64(7500), userBalance(t, tc.db, seeded.ID))
	})

	t.Run("Debit down to zero", func(t *testing.T) {
		seeded := seedUser(t, tc.db, 222, 10000, true)

		require.NoError(t, repo.Debit(tc.ctx, seeded.ID, 10000))
		assert.Equal(t, int64(0), userBalance(t, tc.db, seeded.ID))
	})

	t.Run("Insufficient balance leaves the row untouched", func(t *testing.T) {
		seeded := seedUser(t, tc.db, 333, 100, true)

		err := repo.Debit(tc.ctx, seeded.ID, 101)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, int64(100), userBalance(t, tc.db, seeded.ID))
	})

	t.Run("Missing row is not an insufficient balance", func(t *testing.T) {
		err := repo.Debit(tc.ctx, 9999, 100)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		seeded := seedUser(t, tc.db, 444, 100, true)
		assert.ErrorIs(t, repo.Debit(tc.ctx, seeded.ID, -1), errs.ErrNegativeAmount)
	})
}

func TestUserRepositoryCreditOrder(t *testing.T) {
	repo, tc := newUserRepo(t)
	seeded := seedUser(t, tc.db, 111, 1000, true)

	require.NoError(t, repo.CreditOrder(tc.ctx, seeded.ID, 150, 30000))
	require.NoError(t, repo.CreditOrder(tc.ctx, seeded.ID, 50, 10000))

	user, err := repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), user.Balance())
	assert.Equal(t, int64(40000), user.TotalSpent)
	assert.Equal(t, uint64(2), user.TotalOrders)

	assert.ErrorIs(t, repo.CreditOrder(tc.ctx, 9999, 1, 1), errs.ErrUserNotFound)
	assert.ErrorIs(t, repo.CreditOrder(tc.ctx, seeded.ID, -1, 1), errs.ErrNegativeAmount)
}

func TestUserRepositoryCreditReferral(t *testing.T) {
	repo, tc := newUserRepo(t)
	seeded := seedUser(t, tc.db, 111, 0, true)

	require.NoError(t, repo.CreditReferral(tc.ctx, seeded.ID, 10000))

	user, err := repo.GetByID(tc.ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), user.Balance())
	assert.Equal(t, uint64(1), user.TotalInvited)

	assert.ErrorIs(t, repo.CreditReferral(tc.ctx, 9999, 100), errs.ErrUserNotFound)
	assert.ErrorIs(t, repo.CreditReferral(tc.ctx, seeded.ID, -1), errs.ErrNegativeAmount)
}
