package persistence

import (
	"context"

	"github.com/podmarket/shop-backend/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user accounts.
// The balance-mutating methods are expressed as single conditional updates so
// that concurrent finalizations can never lose a credit or drive the balance
// negative, regardless of what the caller read earlier.
type UserRepository interface {
	// GetByID retrieves a user by internal ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDForUpdate retrieves a user by ID holding a row-level write lock.
	// Only meaningful inside a unit-of-work transaction; the lock serializes
	// concurrent finalizations for the same user.
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.User, error)

	// GetByTelegramID retrieves a user by the stable external identity
	GetByTelegramID(ctx context.Context, telegramID int64) (*entity.User, error)

	// GetByReferralCode resolves a referral code to its owning account
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// GetByUsername resolves a Telegram username to an account. Usernames are
	// not unique by construction; the first match wins, mirroring how the
	// admin tooling has always addressed accounts.
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrDuplicateUser: If user with same telegram id already exists
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, user *entity.User) error

	// UpdateProfile refreshes mutable identity fields (name, username)
	UpdateProfile(ctx context.Context, user *entity.User) error

	// SetVerified flips the ordering gate for an account
	SetVerified(ctx context.Context, id uint64, verified bool) error

	// Debit decrements the balance as one atomic check-and-set against the
	// persisted value. Fails without touching the row if the balance is short.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientFunds: If balance < amount
	// - ErrDatabaseConnection: If database connection fails
	Debit(ctx context.Context, id uint64, amountKopecks int64) error

	// CreditOrder applies the post-order mutations in one update: balance +=
	// cashback, total_spent += orderTotal, total_orders += 1
	CreditOrder(ctx context.Context, id uint64, cashbackKopecks, orderTotalKopecks int64) error

	// CreditReferral applies the referrer-side mutations in one update:
	// balance += amount, total_invited += 1
	CreditReferral(ctx context.Context, id uint64, amountKopecks int64) error
}
