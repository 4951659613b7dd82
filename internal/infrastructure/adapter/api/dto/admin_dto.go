package dto

// VerifyUserRequest flips the verification gate for an account, addressed by
// Telegram id or username
type VerifyUserRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Action   string `json:"action"` // "verify" or "unverify", defaults to verify
}

// CheckVerificationRequest looks up an account's verification status
type CheckVerificationRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// VerificationStatus is the account block returned by check-verification
type VerificationStatus struct {
	ID         uint64 `json:"id"`
	FirstName  string `json:"first_name"`
	Username   string `json:"username"`
	IsVerified bool   `json:"is_verified"`
}

// CheckVerificationResponse reports an account's verification status
type CheckVerificationResponse struct {
	Success bool               `json:"success"`
	User    VerificationStatus `json:"user"`
}

// AdminActionResponse acknowledges an admin mutation
type AdminActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
