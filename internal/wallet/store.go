package wallet

import "context"

// Store persists wallets. Find reports absence through the boolean, never
// through an error. Save is durable on return and must reject writes whose
// Version no longer matches the stored record with ErrVersionConflict, so a
// read-modify-write sequence cannot silently lose a concurrent update.
type Store interface {
	Find(ctx context.Context, identifier string) (Wallet, bool, error)
	Save(ctx context.Context, w Wallet) (Wallet, error)
}
