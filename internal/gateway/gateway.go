package gateway

import (
	"context"
	"fmt"

	"github.com/walletpay/walletpay/internal/money"
)

// Gateway represents a connector to an external payment platform that
// authorizes movement of funds outside this system.
type Gateway interface {
	Charge(ctx context.Context, amount money.Money) error
}

// Error reports a charge the platform did not accept. The reason is whatever
// the provider surfaced; callers must not interpret it beyond "failed".
type Error struct {
	Provider string
	Reason   string
	cause    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s gateway: %s", e.Provider, e.Reason)
}

func (e *Error) Unwrap() error { return e.cause }
