package gateway

import (
	"context"
	"fmt"

	"github.com/walletpay/walletpay/internal/money"
)

// DefaultDeclineBelow is the simulator's decline threshold when none is configured.
var DefaultDeclineBelow = money.MustParse("10.00")

// SimulatedGateway deterministically declines any charge strictly below a
// configured threshold and approves everything else. It stands in for the real
// provider in development and tests.
type SimulatedGateway struct {
	declineBelow money.Money
}

// NewSimulated builds a simulator declining charges below the given amount.
func NewSimulated(declineBelow money.Money) *SimulatedGateway {
	if !declineBelow.IsSet() {
		declineBelow = DefaultDeclineBelow
	}
	return &SimulatedGateway{declineBelow: declineBelow}
}

// Charge approves or declines the amount against the configured threshold.
func (g *SimulatedGateway) Charge(_ context.Context, amount money.Money) error {
	if amount.LessThan(g.declineBelow) {
		return &Error{
			Provider: "simulated",
			Reason:   fmt.Sprintf("amount %s is below the accepted minimum of %s", amount, g.declineBelow),
		}
	}
	return nil
}
