package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/walletpay/walletpay/internal/money"
)

// PostgresStore keeps wallets in a `wallets (id text primary key,
// balance numeric(9,2), version bigint)` table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Find fetches a wallet by identifier.
func (s *PostgresStore) Find(ctx context.Context, identifier string) (Wallet, bool, error) {
	const query = `SELECT id, balance::text, version FROM wallets WHERE id = $1`

	var (
		w       Wallet
		balance string
	)
	if err := s.db.QueryRow(ctx, query, identifier).Scan(&w.Identifier, &balance, &w.Version); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, false, nil
		}
		return Wallet{}, false, fmt.Errorf("find wallet %s: %w", identifier, err)
	}

	parsed, err := money.FromString(balance)
	if err != nil {
		return Wallet{}, false, fmt.Errorf("wallet %s balance: %w", identifier, err)
	}
	w.Balance = parsed
	return w, true, nil
}

// Save commits the new balance, guarded by the version the caller observed.
func (s *PostgresStore) Save(ctx context.Context, w Wallet) (Wallet, error) {
	const query = `UPDATE wallets SET balance = $2, version = version + 1
        WHERE id = $1 AND version = $3
        RETURNING version`

	var version int64
	err := s.db.QueryRow(ctx, query, w.Identifier, w.Balance.String(), w.Version).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrVersionConflict
		}
		return Wallet{}, fmt.Errorf("save wallet %s: %w", w.Identifier, err)
	}

	w.Version = version
	return w, nil
}
