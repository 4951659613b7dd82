package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	coreport "github.com/podmarket/shop-backend/internal/domain/port/core"
	"github.com/podmarket/shop-backend/internal/domain/port/notify"
)

const sendTimeout = 5 * time.Second

// TelegramNotifier delivers order notifications to the admin chat through the
// Bot API. Delivery is best effort; the order has already committed by the
// time this runs.
type TelegramNotifier struct {
	botToken     string
	adminChatID  string
	apiBaseURL   string
	client       *http.Client
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// Option customizes a TelegramNotifier
type Option func(*TelegramNotifier)

// WithAPIBaseURL overrides the Bot API endpoint, used by tests
func WithAPIBaseURL(baseURL string) Option {
	return func(n *TelegramNotifier) {
		n.apiBaseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(n *TelegramNotifier) {
		n.client = client
	}
}

// NewTelegramNotifier creates a notifier bound to the admin chat
func NewTelegramNotifier(botToken, adminChatID string, timeProvider coreport.TimeProvider, logger coreport.Logger, opts ...Option) notify.Dispatcher {
	n := &TelegramNotifier{
		botToken:     botToken,
		adminChatID:  adminChatID,
		apiBaseURL:   "https://api.telegram.org",
		client:       &http.Client{Timeout: sendTimeout},
		timeProvider: timeProvider,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// DispatchOrderCreated sends the admin notification for a new order. With no
// bot token or admin chat configured it logs and returns nil, matching the
// best-effort contract.
func (n *TelegramNotifier) DispatchOrderCreated(ctx context.Context, facts notify.OrderFacts) error {
	if n.botToken == "" || n.adminChatID == "" {
		n.logger.Info("Telegram notifier not configured, skipping order notification", map[string]any{
			"order_id": facts.OrderID,
		})
		return nil
	}

	payload := map[string]any{
		"chat_id":    n.adminChatID,
		"text":       n.formatMessage(facts),
		"parse_mode": "Markdown",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	ctx, cancel := n.timeProvider.WithTimeout(ctx, sendTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBaseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send order notification: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	n.logger.Info("Order notification sent", map[string]any{
		"order_id": facts.OrderID,
	})
	return nil
}

// formatMessage renders the admin message the same way the shop always has
func (n *TelegramNotifier) formatMessage(facts notify.OrderFacts) string {
	deliveryTypeText := "самовывоз"
	if facts.DeliveryType == "delivery" {
		deliveryTypeText = "доставка"
	}
	usernameText := "Нет username"
	if facts.Username != "" {
		usernameText = "@" + facts.Username
	}

	return fmt.Sprintf(
		"🛒 *Новый заказ #%d*\n\n"+
			"👤 *Клиент:* %s\n"+
			"📱 *Username:* %s\n"+
			"📞 *Телефон:* %s\n"+
			"💰 *Сумма:* %s руб.\n"+
			"🚚 *Тип:* %s\n"+
			"📍 *Адрес:* %s\n\n"+
			"⏰ *Время:* %s",
		facts.OrderID,
		facts.CustomerName,
		usernameText,
		facts.CustomerPhone,
		facts.TotalAmount,
		deliveryTypeText,
		facts.DeliveryInfo,
		n.timeProvider.Now().Format("2006-01-02 15:04:05"),
	)
}
