package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walletpay/walletpay/internal/money"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Find(ctx context.Context, identifier string) (Wallet, bool, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(Wallet), args.Bool(1), args.Error(2)
}

func (m *mockStore) Save(ctx context.Context, w Wallet) (Wallet, error) {
	args := m.Called(ctx, w)
	return args.Get(0).(Wallet), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Charge(ctx context.Context, amount money.Money) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func newWallet(balance string) Wallet {
	return Wallet{Identifier: uuid.NewString(), Balance: money.MustParse(balance), Version: 1}
}

func TestChargeSucceeds(t *testing.T) {
	w := newWallet("100.00")
	debited := w
	debited.Balance = money.MustParse("90.00")
	committed := debited
	committed.Version = 2

	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	store.On("Save", mock.Anything, debited).Return(committed, nil).Once()

	svc := NewService(store, new(mockGateway))
	got, err := svc.Charge(context.Background(), w.Identifier, money.MustParse("10.00"))

	require.NoError(t, err)
	assert.Equal(t, w.Identifier, got.Identifier)
	assert.Equal(t, "90.00", got.Balance.String())
	store.AssertExpectations(t)
}

func TestChargeInsufficientBalance(t *testing.T) {
	cases := []struct {
		name    string
		balance string
		amount  string
	}{
		{name: "amount exceeds balance", balance: "5.00", amount: "10.00"},
		{name: "zero balance", balance: "0.00", amount: "10.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newWallet(tc.balance)
			store := new(mockStore)
			store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()

			svc := NewService(store, new(mockGateway))
			_, err := svc.Charge(context.Background(), w.Identifier, money.MustParse(tc.amount))

			assert.ErrorIs(t, err, ErrInsufficientBalance)
			store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestChargeInvalidAmount(t *testing.T) {
	svc := NewService(new(mockStore), new(mockGateway))

	for _, amount := range []string{"0.00", "-1.00"} {
		_, err := svc.Charge(context.Background(), uuid.NewString(), money.MustParse(amount))
		assert.ErrorIs(t, err, ErrInvalidChargeValue, "amount %s", amount)
	}
}

func TestChargeValidatesArgumentsInOrder(t *testing.T) {
	svc := NewService(new(mockStore), new(mockGateway))

	var valErr *ValidationError

	_, err := svc.Charge(context.Background(), "", money.MustParse("10.00"))
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "identifier is required", valErr.Message)

	_, err = svc.Charge(context.Background(), uuid.NewString(), money.Money{})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "amount is required", valErr.Message)

	// Identifier is checked before the amount.
	_, err = svc.Charge(context.Background(), "", money.Money{})
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "identifier is required", valErr.Message)
}

func TestChargeUnknownWallet(t *testing.T) {
	store := new(mockStore)
	store.On("Find", mock.Anything, "unknown-id").Return(Wallet{}, false, nil).Once()
	gw := new(mockGateway)

	svc := NewService(store, gw)
	_, err := svc.Charge(context.Background(), "unknown-id", money.MustParse("10.00"))

	assert.ErrorIs(t, err, ErrNotFound)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestChargeRetriesOnVersionConflict(t *testing.T) {
	w := newWallet("100.00")
	amount := money.MustParse("10.00")

	stale := w
	stale.Balance = money.MustParse("90.00")

	// A concurrent recharge bumped the wallet between our find and save.
	fresh := w
	fresh.Balance = money.MustParse("150.00")
	fresh.Version = 2
	freshDebited := fresh
	freshDebited.Balance = money.MustParse("140.00")
	committed := freshDebited
	committed.Version = 3

	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	store.On("Save", mock.Anything, stale).Return(Wallet{}, ErrVersionConflict).Once()
	store.On("Find", mock.Anything, w.Identifier).Return(fresh, true, nil).Once()
	store.On("Save", mock.Anything, freshDebited).Return(committed, nil).Once()

	svc := NewService(store, new(mockGateway))
	got, err := svc.Charge(context.Background(), w.Identifier, amount)

	require.NoError(t, err)
	assert.Equal(t, "140.00", got.Balance.String())
	store.AssertExpectations(t)
}

func TestRechargeSucceeds(t *testing.T) {
	w := newWallet("100.00")
	amount := money.MustParse("10.00")
	credited := w
	credited.Balance = money.MustParse("110.00")
	committed := credited
	committed.Version = 2

	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	store.On("Save", mock.Anything, credited).Return(committed, nil).Once()
	gw := new(mockGateway)
	gw.On("Charge", mock.Anything, amount).Return(nil).Once()

	svc := NewService(store, gw)
	got, err := svc.Recharge(context.Background(), w.Identifier, amount)

	require.NoError(t, err)
	assert.Equal(t, "110.00", got.Balance.String())
	store.AssertExpectations(t)
	gw.AssertExpectations(t)
}

func TestRechargePaymentDeclined(t *testing.T) {
	w := newWallet("100.00")
	amount := money.MustParse("5.00")
	declined := errors.New("issuer declined")

	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	gw := new(mockGateway)
	gw.On("Charge", mock.Anything, amount).Return(declined).Once()

	svc := NewService(store, gw)
	_, err := svc.Recharge(context.Background(), w.Identifier, amount)

	var busErr *BusinessError
	require.ErrorAs(t, err, &busErr)
	assert.Equal(t, CodePaymentError, busErr.Code)
	assert.ErrorIs(t, err, declined, "cause must stay attached for logging")
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRechargeInvalidAmount(t *testing.T) {
	gw := new(mockGateway)
	svc := NewService(new(mockStore), gw)

	_, err := svc.Recharge(context.Background(), uuid.NewString(), money.MustParse("-2.00"))

	assert.ErrorIs(t, err, ErrInvalidChargeValue)
	gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
}

func TestRechargeUnknownWallet(t *testing.T) {
	store := new(mockStore)
	store.On("Find", mock.Anything, "unknown-id").Return(Wallet{}, false, nil).Once()
	gw := new(mockGateway)

	svc := NewService(store, gw)
	_, err := svc.Recharge(context.Background(), "unknown-id", money.MustParse("10.00"))

	assert.ErrorIs(t, err, ErrNotFound)
	gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRechargeConflictRetryChargesGatewayOnce(t *testing.T) {
	w := newWallet("100.00")
	amount := money.MustParse("10.00")

	credited := w
	credited.Balance = money.MustParse("110.00")

	fresh := w
	fresh.Balance = money.MustParse("80.00")
	fresh.Version = 2
	freshCredited := fresh
	freshCredited.Balance = money.MustParse("90.00")
	committed := freshCredited
	committed.Version = 3

	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	store.On("Save", mock.Anything, credited).Return(Wallet{}, ErrVersionConflict).Once()
	store.On("Find", mock.Anything, w.Identifier).Return(fresh, true, nil).Once()
	store.On("Save", mock.Anything, freshCredited).Return(committed, nil).Once()

	gw := new(mockGateway)
	gw.On("Charge", mock.Anything, amount).Return(nil).Once()

	svc := NewService(store, gw)
	got, err := svc.Recharge(context.Background(), w.Identifier, amount)

	require.NoError(t, err)
	assert.Equal(t, "90.00", got.Balance.String())
	gw.AssertNumberOfCalls(t, "Charge", 1)
	store.AssertExpectations(t)
}

func TestGet(t *testing.T) {
	w := newWallet("42.00")
	store := new(mockStore)
	store.On("Find", mock.Anything, w.Identifier).Return(w, true, nil).Once()
	store.On("Find", mock.Anything, "missing").Return(Wallet{}, false, nil).Once()

	svc := NewService(store, new(mockGateway))

	got, err := svc.Get(context.Background(), w.Identifier)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	var valErr *ValidationError
	_, err = svc.Get(context.Background(), "")
	assert.ErrorAs(t, err, &valErr)
}
