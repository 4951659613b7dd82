package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	errs "github.com/podmarket/shop-backend/internal/domain/error"
	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/identity"
)

// TelegramVerifier validates Telegram Web App initData signatures and
// extracts the authenticated user from them
type TelegramVerifier struct {
	botToken string
	logger   coreport.Logger
}

// NewTelegramVerifier creates a verifier bound to the bot token. An empty
// token disables signature checking, which keeps local development usable
// without a registered bot.
func NewTelegramVerifier(botToken string, logger coreport.Logger) identity.Verifier {
	return &TelegramVerifier{
		botToken: botToken,
		logger:   logger,
	}
}

// Verify checks the HMAC signature of initData and returns the embedded user
func (v *TelegramVerifier) Verify(initData string) (*identity.TelegramUser, error) {
	if initData == "" {
		return nil, fmt.Errorf("%w: empty init data", errs.ErrValidation)
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed init data: %s", errs.ErrValidation, err.Error())
	}

	if v.botToken == "" {
		v.logger.Warn("Bot token not configured, skipping signature check", nil)
		return parseUser(values)
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, fmt.Errorf("%w: init data carries no hash", errs.ErrValidation)
	}

	if !v.signatureValid(values, receivedHash) {
		v.logger.Warn("Invalid init data signature", nil)
		return nil, fmt.Errorf("%w: invalid init data signature", errs.ErrValidation)
	}

	return parseUser(values)
}

// signatureValid recomputes the Web App signature: the data-check-string is
// the sorted key=value pairs minus the hash itself, keyed by
// HMAC-SHA256("WebAppData", botToken).
func (v *TelegramVerifier) signatureValid(values url.Values, receivedHash string) bool {
	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		if value := values.Get(key); value != "" {
			pairs = append(pairs, key+"="+value)
		}
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(v.botToken))
	secretKey := secretMac.Sum(nil)

	mac := hmac.New(sha256.New, secretKey)
	mac.Write([]byte(dataCheckString))
	calculated := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(calculated), []byte(receivedHash))
}

func parseUser(values url.Values) (*identity.TelegramUser, error) {
	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, fmt.Errorf("%w: init data carries no user", errs.ErrValidation)
	}

	var user identity.TelegramUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("%w: malformed user payload: %s", errs.ErrValidation, err.Error())
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("%w: user id is missing", errs.ErrValidation)
	}
	if user.FirstName == "" {
		user.FirstName = "Пользователь"
	}

	return &user, nil
}
