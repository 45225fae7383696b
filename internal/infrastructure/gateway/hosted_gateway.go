package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/config"
)

// HostedGateway implements PaymentGateway against a hosted checkout
// provider. Until a provider is configured it degrades gracefully:
// sessions come back unconfigured instead of failing the payment flow,
// so orders can still be placed and settled through the back office.
type HostedGateway struct {
	cfg    config.GatewayConfig
	logger *zap.Logger
}

// NewHostedGateway creates a gateway from configuration
func NewHostedGateway(cfg config.GatewayConfig, logger *zap.Logger) *HostedGateway {
	return &HostedGateway{cfg: cfg, logger: logger}
}

// Configured reports whether a provider and credentials are present
func (g *HostedGateway) Configured() bool {
	return g.cfg.Provider != "" && g.cfg.APIKey != ""
}

// CreateSession opens a hosted checkout session for the payment
func (g *HostedGateway) CreateSession(ctx context.Context, p *payment.Payment) (*payment.GatewaySession, error) {
	if !g.Configured() {
		return &payment.GatewaySession{
			Configured: false,
			Message:    "payment gateway not configured",
		}, nil
	}

	params := url.Values{}
	params.Set("payment_id", p.PaymentID)
	params.Set("amount", p.Amount.StringFixed(2))
	params.Set("currency", "INR")
	if g.cfg.CallbackURL != "" {
		params.Set("notify_url", g.cfg.CallbackURL)
	}
	params.Set("signature", g.sign(params))

	redirectURL := fmt.Sprintf("https://%s/hosted/checkout?%s", g.cfg.Provider, params.Encode())

	g.logger.Info("Opened gateway session",
		zap.String("payment_id", p.PaymentID),
		zap.String("provider", g.cfg.Provider),
	)

	return &payment.GatewaySession{
		Configured:  true,
		RedirectURL: redirectURL,
	}, nil
}

// callbackNotification is the asynchronous notification body posted by
// the provider
type callbackNotification struct {
	PaymentID     string `json:"payment_id"`
	Event         string `json:"event"`
	TransactionID string `json:"transaction_id"`
	Signature     string `json:"signature"`
}

// HandleCallback verifies an asynchronous provider notification. The
// status transition itself is applied by the caller once verification
// succeeds.
func (g *HostedGateway) HandleCallback(ctx context.Context, payload []byte) error {
	if !g.Configured() {
		return shared.NewDomainError("GATEWAY_NOT_CONFIGURED", "Payment gateway is not configured")
	}

	var notification callbackNotification
	if err := json.Unmarshal(payload, &notification); err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Malformed gateway notification")
	}
	if notification.PaymentID == "" || notification.Event == "" {
		return shared.NewDomainError("INVALID_INPUT", "Gateway notification is missing required fields")
	}

	expected := url.Values{}
	expected.Set("payment_id", notification.PaymentID)
	expected.Set("event", notification.Event)
	expected.Set("transaction_id", notification.TransactionID)
	if !hmac.Equal([]byte(g.sign(expected)), []byte(notification.Signature)) {
		return shared.NewDomainError("INVALID_SIGNATURE", "Gateway notification signature mismatch")
	}

	g.logger.Info("Verified gateway notification",
		zap.String("payment_id", notification.PaymentID),
		zap.String("event", notification.Event),
	)
	return nil
}

// sign computes an HMAC-SHA256 over the sorted, encoded parameters
func (g *HostedGateway) sign(params url.Values) string {
	params.Del("signature")
	mac := hmac.New(sha256.New, []byte(g.cfg.APIKey))
	mac.Write([]byte(params.Encode()))
	return hex.EncodeToString(mac.Sum(nil))
}

// Ensure HostedGateway implements PaymentGateway
var _ payment.PaymentGateway = (*HostedGateway)(nil)
