package gateway

import (
	"context"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"

	"github.com/walletpay/walletpay/internal/money"
)

const defaultCurrency = "eur"

// StripeGateway charges a configured payment source through the Stripe
// Charges API. Whatever Stripe reports is surfaced as a gateway Error.
type StripeGateway struct {
	currency string
	source   string
}

// NewStripe configures the Stripe client with the secret key and returns a
// connector charging the given source (e.g. a stored card token).
func NewStripe(secretKey, currency, source string) *StripeGateway {
	stripe.Key = secretKey
	if currency == "" {
		currency = defaultCurrency
	}
	return &StripeGateway{currency: currency, source: source}
}

// Charge captures the amount on the external payment instrument.
func (g *StripeGateway) Charge(ctx context.Context, amount money.Money) error {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(amount.Cents()),
		Currency:    stripe.String(g.currency),
		Description: stripe.String("wallet recharge"),
	}
	params.Context = ctx
	if g.source != "" {
		if err := params.SetSource(g.source); err != nil {
			return &Error{Provider: "stripe", Reason: "invalid payment source", cause: err}
		}
	}

	if _, err := charge.New(params); err != nil {
		return &Error{Provider: "stripe", Reason: "charge was not accepted", cause: err}
	}
	return nil
}
