package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"corebank/internal/store"
)

func newAccountService(accounts stubAccountStore, customers stubCustomerDirectory, recorder *recordingTransactionStore) *AccountService {
	return NewAccountService(fakeTxRunner{}, accounts, customers, recorder, discardLogger())
}

func TestDepositInvalidAmountStillAudited(t *testing.T) {
	recorder := &recordingTransactionStore{}
	service := newAccountService(stubAccountStore{
		getFn: func(context.Context, store.Getter, string) (store.Account, error) {
			return store.Account{ID: "acc-1", Balance: 10000}, nil
		},
		updateBalanceFn: func(context.Context, store.Execer, string, int64) error {
			t.Fatalf("balance must not change on rejection")
			return nil
		},
	}, stubCustomerDirectory{}, recorder)

	balance, err := service.Deposit(context.Background(), "acc-1", 0)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if balance != 10000 {
		t.Fatalf("expected unchanged balance, got %d", balance)
	}
	if len(recorder.appended) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(recorder.appended))
	}
	row := recorder.appended[0]
	if row.Outcome != "rejected" || row.Reason == nil || *row.Reason != ErrInvalidAmount.Error() {
		t.Fatalf("unexpected audit row: %#v", row)
	}
}

func TestDepositSuccess(t *testing.T) {
	recorder := &recordingTransactionStore{}
	var updatedTo int64
	service := newAccountService(stubAccountStore{
		getFn: func(context.Context, store.Getter, string) (store.Account, error) {
			return store.Account{ID: "acc-1", Balance: 10000}, nil
		},
		updateBalanceFn: func(_ context.Context, _ store.Execer, _ string, balance int64) error {
			updatedTo = balance
			return nil
		},
	}, stubCustomerDirectory{}, recorder)

	balance, err := service.Deposit(context.Background(), "acc-1", 5000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 15000 || updatedTo != 15000 {
		t.Fatalf("expected balance 15000, got %d (stored %d)", balance, updatedTo)
	}
	if len(recorder.appended) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(recorder.appended))
	}
	row := recorder.appended[0]
	if row.Type != "deposit" || row.Outcome != "success" || row.BalanceAfter != 15000 || row.Amount != 5000 {
		t.Fatalf("unexpected audit row: %#v", row)
	}
	if row.AccountID == nil || *row.AccountID != "acc-1" {
		t.Fatalf("audit row must reference the account: %#v", row)
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	recorder := &recordingTransactionStore{}
	service := newAccountService(stubAccountStore{
		getFn: func(context.Context, store.Getter, string) (store.Account, error) {
			return store.Account{ID: "acc-1", Balance: 15000}, nil
		},
		updateBalanceFn: func(context.Context, store.Execer, string, int64) error {
			t.Fatalf("balance must not change on rejection")
			return nil
		},
	}, stubCustomerDirectory{}, recorder)

	balance, err := service.Withdraw(context.Background(), "acc-1", 20000)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if balance != 15000 {
		t.Fatalf("expected unchanged balance, got %d", balance)
	}
	row := recorder.appended[0]
	if row.Outcome != "rejected" || *row.Reason != ErrInsufficientFunds.Error() || row.BalanceAfter != 15000 {
		t.Fatalf("unexpected audit row: %#v", row)
	}
}

func TestWithdrawDrainsToZero(t *testing.T) {
	recorder := &recordingTransactionStore{}
	service := newAccountService(stubAccountStore{
		getFn: func(context.Context, store.Getter, string) (store.Account, error) {
			return store.Account{ID: "acc-1", Balance: 15000}, nil
		},
	}, stubCustomerDirectory{}, recorder)

	balance, err := service.Withdraw(context.Background(), "acc-1", 15000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0, got %d", balance)
	}
	if recorder.appended[0].Outcome != "success" {
		t.Fatalf("unexpected audit row: %#v", recorder.appended[0])
	}
}

func TestWithdrawUnknownAccount(t *testing.T) {
	recorder := &recordingTransactionStore{}
	service := newAccountService(stubAccountStore{
		getFn: func(context.Context, store.Getter, string) (store.Account, error) {
			return store.Account{}, sql.ErrNoRows
		},
	}, stubCustomerDirectory{}, recorder)

	_, err := service.Withdraw(context.Background(), "missing", 100)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if len(recorder.appended) != 0 {
		t.Fatalf("no audit row expected for a missing account")
	}
}

func TestOpenRejectsUnknownCustomer(t *testing.T) {
	created := false
	service := newAccountService(stubAccountStore{
		createFn: func(context.Context, store.Execer, string, string, string, int64) error {
			created = true
			return nil
		},
	}, stubCustomerDirectory{
		existsFn: func(context.Context, store.Getter, string) (bool, error) { return false, nil },
	}, &recordingTransactionStore{})

	_, err := service.Open(context.Background(), "ghost", "checking", 0)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if created {
		t.Fatalf("account must not be created for an unknown customer")
	}
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	service := newAccountService(stubAccountStore{}, stubCustomerDirectory{}, &recordingTransactionStore{})
	_, err := service.Open(context.Background(), "cust-1", "offshore", 0)
	if !errors.Is(err, ErrInvalidAccountKind) {
		t.Fatalf("expected ErrInvalidAccountKind, got %v", err)
	}
}

func TestOpenRejectsNegativeOpeningBalance(t *testing.T) {
	service := newAccountService(stubAccountStore{}, stubCustomerDirectory{}, &recordingTransactionStore{})
	_, err := service.Open(context.Background(), "cust-1", "savings", -1)
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
