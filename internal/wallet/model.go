package wallet

import "github.com/walletpay/walletpay/internal/money"

// Wallet is an account balance keyed by an opaque, externally assigned
// identifier. Two wallets denote the same entity iff their identifiers are
// equal; the balance is not part of identity.
type Wallet struct {
	Identifier string
	Balance    money.Money

	// Version increments on every committed save and guards against lost
	// updates between concurrent read-modify-write transactions.
	Version int64
}
