package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
)

// User represents a shop account. Created on first contact with the mini-app,
// mutated by every completed order and every successful referral, never
// hard-deleted.
type User struct {
	ID           uint64 // Internal identifier
	TelegramID   int64  // Stable external identity
	Username     string
	FirstName    string
	balance      int64 // Balance in kopecks (private, never negative)
	IsVerified   bool  // Ordering is gated on manual verification
	ReferralCode string
	InvitedBy    *uint64 // Weak back-reference to the inviter
	TotalSpent   int64   // Cumulative completed-order value in kopecks
	TotalOrders  uint64
	TotalInvited uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new unverified user with a zero balance and a freshly
// generated referral code
func NewUser(telegramID int64, username, firstName string, timeProvider coreport.TimeProvider) (*User, error) {
	if telegramID == 0 {
		return nil, fmt.Errorf("%w: telegram id is required", errs.ErrValidation)
	}

	now := timeProvider.Now()
	return &User{
		TelegramID:   telegramID,
		Username:     username,
		FirstName:    firstName,
		balance:      0,
		IsVerified:   false,
		ReferralCode: GenerateReferralCode(telegramID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GenerateReferralCode produces a unique referral code bound to the Telegram id
func GenerateReferralCode(telegramID int64) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("ref_%d_%s", telegramID, suffix)
}

// Balance returns the current balance in kopecks
func (u *User) Balance() int64 {
	return u.balance
}

// FormattedBalance returns the balance as a string with 2 decimal places
func (u *User) FormattedBalance() string {
	return FormatAmount(u.balance)
}

// SetBalance updates the balance directly (for repositories rehydrating state)
func (u *User) SetBalance(kopecks int64) {
	u.balance = kopecks
}

// CanDeduct checks if the user has enough balance for a deduction. The check
// is advisory; the authoritative guard is the conditional update in the ledger.
func (u *User) CanDeduct(kopecks int64) bool {
	return u.balance >= kopecks
}

// ApplyOrder records a completed order against in-memory state: the cashback
// credit, the spend counter and the order counter. Mirrors what the ledger
// applies in the database.
func (u *User) ApplyOrder(totalKopecks, cashbackKopecks int64, paidFromBalance bool, timeProvider coreport.TimeProvider) error {
	if paidFromBalance {
		if u.balance < totalKopecks {
			return errs.ErrInsufficientFunds
		}
		u.balance -= totalKopecks
	}
	u.balance += cashbackKopecks
	u.TotalSpent += totalKopecks
	u.TotalOrders++
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// ApplyReferralCredit records a granted referral bonus against in-memory state
func (u *User) ApplyReferralCredit(amountKopecks int64, timeProvider coreport.TimeProvider) {
	u.balance += amountKopecks
	u.TotalInvited++
	u.UpdatedAt = timeProvider.Now()
}
