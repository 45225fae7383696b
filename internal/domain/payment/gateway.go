package payment

import "context"

// GatewaySession is what the payment gateway hands back when a payment
// attempt is opened.
type GatewaySession struct {
	Configured  bool
	RedirectURL string
	Message     string
}

// PaymentGateway opens payment sessions with an external provider.
// Online methods (card, UPI, net banking) go through it; cash on
// delivery never does.
type PaymentGateway interface {
	// CreateSession opens a gateway session for the payment
	CreateSession(ctx context.Context, p *Payment) (*GatewaySession, error)

	// HandleCallback processes an asynchronous notification from the provider
	HandleCallback(ctx context.Context, payload []byte) error
}
