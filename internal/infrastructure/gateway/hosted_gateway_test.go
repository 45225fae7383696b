package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/infrastructure/config"
)

func newTestPayment(t *testing.T) *payment.Payment {
	p, err := payment.NewPayment(uuid.New(), valueobject.NewMoneyINR(decimal.NewFromInt(799)), order.PaymentMethodUPI)
	require.NoError(t, err)
	return p
}

func TestHostedGateway_CreateSession(t *testing.T) {
	t.Run("unconfigured gateway returns a degraded session", func(t *testing.T) {
		g := NewHostedGateway(config.GatewayConfig{}, zap.NewNop())

		session, err := g.CreateSession(context.Background(), newTestPayment(t))
		require.NoError(t, err)
		assert.False(t, session.Configured)
		assert.Equal(t, "payment gateway not configured", session.Message)
		assert.Empty(t, session.RedirectURL)
	})

	t.Run("configured gateway builds a signed redirect URL", func(t *testing.T) {
		g := NewHostedGateway(config.GatewayConfig{
			Provider:    "pay.example.com",
			APIKey:      "secret",
			CallbackURL: "https://shop.example.com/api/v1/payments/callback",
		}, zap.NewNop())

		p := newTestPayment(t)
		session, err := g.CreateSession(context.Background(), p)
		require.NoError(t, err)
		assert.True(t, session.Configured)

		parsed, err := url.Parse(session.RedirectURL)
		require.NoError(t, err)
		assert.Equal(t, "pay.example.com", parsed.Host)

		query := parsed.Query()
		assert.Equal(t, p.PaymentID, query.Get("payment_id"))
		assert.Equal(t, "799.00", query.Get("amount"))
		assert.Equal(t, "INR", query.Get("currency"))
		assert.NotEmpty(t, query.Get("signature"))
	})
}

func TestHostedGateway_HandleCallback(t *testing.T) {
	cfg := config.GatewayConfig{Provider: "pay.example.com", APIKey: "secret"}

	signedPayload := func(t *testing.T, g *HostedGateway, paymentID, event, txnID string) []byte {
		params := url.Values{}
		params.Set("payment_id", paymentID)
		params.Set("event", event)
		params.Set("transaction_id", txnID)
		body, err := json.Marshal(map[string]string{
			"payment_id":     paymentID,
			"event":          event,
			"transaction_id": txnID,
			"signature":      g.sign(params),
		})
		require.NoError(t, err)
		return body
	}

	t.Run("accepts a correctly signed notification", func(t *testing.T) {
		g := NewHostedGateway(cfg, zap.NewNop())
		payload := signedPayload(t, g, "PAY-1A2B3C4D5E", "payment.completed", "txn-001")

		assert.NoError(t, g.HandleCallback(context.Background(), payload))
	})

	t.Run("rejects a tampered notification", func(t *testing.T) {
		g := NewHostedGateway(cfg, zap.NewNop())
		payload := signedPayload(t, g, "PAY-1A2B3C4D5E", "payment.completed", "txn-001")
		tampered := []byte(string(payload[:len(payload)-2]) + `X"}`)

		err := g.HandleCallback(context.Background(), tampered)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
	})

	t.Run("rejects a notification with a wrong signature", func(t *testing.T) {
		g := NewHostedGateway(cfg, zap.NewNop())
		body, err := json.Marshal(map[string]string{
			"payment_id":     "PAY-1A2B3C4D5E",
			"event":          "payment.completed",
			"transaction_id": "txn-001",
			"signature":      "deadbeef",
		})
		require.NoError(t, err)

		err = g.HandleCallback(context.Background(), body)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SIGNATURE", domainErr.Code)
	})

	t.Run("rejects notifications when unconfigured", func(t *testing.T) {
		g := NewHostedGateway(config.GatewayConfig{}, zap.NewNop())

		err := g.HandleCallback(context.Background(), []byte(`{}`))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "GATEWAY_NOT_CONFIGURED", domainErr.Code)
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		g := NewHostedGateway(cfg, zap.NewNop())

		err := g.HandleCallback(context.Background(), []byte(`not json`))
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	})
}
