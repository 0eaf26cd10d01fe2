package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// ErrGatewayDisabled is returned when no secret key was configured.
var ErrGatewayDisabled = errors.New("payment gateway is not configured")

// Intent is the part of a created charge intent the client needs to confirm it.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway creates card charge intents for an amount in minor units.
type Gateway interface {
	CreateIntent(ctx context.Context, amount int64) (*Intent, error)
}

type StripeGateway struct {
	api      *client.API
	currency string
}

// NewStripeGateway returns a gateway bound to secretKey. An empty key yields a
// gateway that rejects every request with ErrGatewayDisabled.
func NewStripeGateway(secretKey, currency string) *StripeGateway {
	g := &StripeGateway{currency: currency}
	if secretKey != "" {
		g.api = client.New(secretKey, nil)
	}
	return g
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	if g.api == nil {
		return nil, ErrGatewayDisabled
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment: create intent: %w", err)
	}
	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
