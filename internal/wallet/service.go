package wallet

import (
	"context"
	"errors"

	"github.com/walletpay/walletpay/internal/gateway"
	"github.com/walletpay/walletpay/internal/money"
)

// saveAttempts bounds the retries a transaction performs when its save loses
// the optimistic-concurrency race.
const saveAttempts = 3

// Service implements the wallet transaction engines. Charge debits a wallet,
// Recharge credits it after a successful external payment, Get fetches it.
// The service performs no logging; failed operations surface exactly one
// typed error for the transport layer to render.
type Service struct {
	store   Store
	gateway gateway.Gateway
}

// NewService builds a wallet service.
func NewService(store Store, gw gateway.Gateway) *Service {
	return &Service{store: store, gateway: gw}
}

// Get fetches a wallet by identifier.
func (s *Service) Get(ctx context.Context, identifier string) (Wallet, error) {
	if identifier == "" {
		return Wallet{}, &ValidationError{Message: "identifier is required"}
	}
	w, ok, err := s.store.Find(ctx, identifier)
	if err != nil {
		return Wallet{}, err
	}
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w, nil
}

// Charge debits the wallet by amount. The balance never goes negative: a
// charge against a zero balance or exceeding the current balance fails with
// ErrInsufficientBalance and leaves the wallet untouched.
func (s *Service) Charge(ctx context.Context, identifier string, amount money.Money) (Wallet, error) {
	if err := validateInput(identifier, amount); err != nil {
		return Wallet{}, err
	}

	for attempt := 0; attempt < saveAttempts; attempt++ {
		w, ok, err := s.store.Find(ctx, identifier)
		if err != nil {
			return Wallet{}, err
		}
		if !ok {
			return Wallet{}, ErrNotFound
		}

		// Sufficiency is always judged against the balance observed in
		// the same attempt that commits it.
		if w.Balance.IsZero() || amount.GreaterThan(w.Balance) {
			return Wallet{}, ErrInsufficientBalance
		}

		w.Balance = w.Balance.Sub(amount)
		saved, err := s.store.Save(ctx, w)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if err != nil {
			return Wallet{}, err
		}
		return saved, nil
	}

	return Wallet{}, ErrVersionConflict
}

// Recharge credits the wallet by amount after charging the external payment
// platform. A gateway failure maps to BUS-003 with the cause attached for
// logging; the wallet is not modified and nothing is saved.
func (s *Service) Recharge(ctx context.Context, identifier string, amount money.Money) (Wallet, error) {
	if err := validateInput(identifier, amount); err != nil {
		return Wallet{}, err
	}

	w, ok, err := s.store.Find(ctx, identifier)
	if err != nil {
		return Wallet{}, err
	}
	if !ok {
		return Wallet{}, ErrNotFound
	}

	if err := s.gateway.Charge(ctx, amount); err != nil {
		return Wallet{}, NewPaymentError(err)
	}

	// Funds are captured externally at this point. Conflict retries re-read
	// and re-save but must never reach the gateway a second time.
	for attempt := 0; attempt < saveAttempts; attempt++ {
		if attempt > 0 {
			w, ok, err = s.store.Find(ctx, identifier)
			if err != nil {
				return Wallet{}, err
			}
			if !ok {
				return Wallet{}, ErrNotFound
			}
		}

		updated := w
		updated.Balance = w.Balance.Add(amount)
		saved, err := s.store.Save(ctx, updated)
		if errors.Is(err, ErrVersionConflict) {
			continue
		}
		if err != nil {
			return Wallet{}, err
		}
		return saved, nil
	}

	return Wallet{}, ErrVersionConflict
}

// validateInput applies the shared precondition checks in order; the first
// failure wins.
func validateInput(identifier string, amount money.Money) error {
	if identifier == "" {
		return &ValidationError{Message: "identifier is required"}
	}
	if !amount.IsSet() {
		return &ValidationError{Message: "amount is required"}
	}
	if !amount.IsPositive() {
		return ErrInvalidChargeValue
	}
	return nil
}
