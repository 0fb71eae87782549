package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/walletpay/walletpay/internal/money"
)

func TestMemoryStoreFindAbsent(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Find(context.Background(), "missing")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if ok {
		t.Fatal("expected absent wallet")
	}
}

func TestMemoryStoreFindIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.NewString()
	store.Seed(Wallet{Identifier: id, Balance: money.MustParse("25.00")})

	first, ok, err := store.Find(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("first find: ok=%v err=%v", ok, err)
	}
	second, ok, err := store.Find(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("second find: ok=%v err=%v", ok, err)
	}
	if first != second {
		t.Fatalf("expected equal wallets, got %+v and %+v", first, second)
	}
}

func TestMemoryStoreSaveBumpsVersion(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.NewString()
	store.Seed(Wallet{Identifier: id, Balance: money.MustParse("100.00")})

	w, _, err := store.Find(context.Background(), id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}

	w.Balance = money.MustParse("90.00")
	saved, err := store.Save(context.Background(), w)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.Version != w.Version+1 {
		t.Fatalf("expected version %d, got %d", w.Version+1, saved.Version)
	}
	if !saved.Balance.Equal(money.MustParse("90.00")) {
		t.Fatalf("unexpected balance %s", saved.Balance)
	}
}

func TestMemoryStoreSaveDetectsConflict(t *testing.T) {
	store := NewMemoryStore()
	id := uuid.NewString()
	store.Seed(Wallet{Identifier: id, Balance: money.MustParse("100.00")})

	first, _, _ := store.Find(context.Background(), id)
	second := first

	first.Balance = money.MustParse("90.00")
	if _, err := store.Save(context.Background(), first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second.Balance = money.MustParse("110.00")
	if _, err := store.Save(context.Background(), second); !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}

	current, _, _ := store.Find(context.Background(), id)
	if !current.Balance.Equal(money.MustParse("90.00")) {
		t.Fatalf("conflicting save must not change the balance, got %s", current.Balance)
	}
}

func TestMemoryStoreSaveUnknownWallet(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Save(context.Background(), Wallet{Identifier: "ghost", Balance: money.Zero(), Version: 1})
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}
