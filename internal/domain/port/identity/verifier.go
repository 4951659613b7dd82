package identity

// TelegramUser is the identity extracted from verified Mini-App init data
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
}

// Verifier checks the Mini-App init data signature and extracts the caller's
// identity. The signature math itself is a pure function owned by the adapter.
type Verifier interface {
	Verify(initData string) (*TelegramUser, error)
}
