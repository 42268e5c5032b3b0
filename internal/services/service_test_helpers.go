package services

import (
	"context"
	"io"
	"log/slog"

	"corebank/internal/store"

	"github.com/jmoiron/sqlx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeTxRunner struct {
	err error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type stubAccountStore struct {
	createFn        func(ctx context.Context, tx store.Execer, id, customerID, kind string, balance int64) error
	getFn           func(ctx context.Context, q store.Getter, accountID string) (store.Account, error)
	getByIDFn       func(ctx context.Context, accountID string) (store.Account, error)
	primaryFn       func(ctx context.Context, q store.Getter, customerID string) (store.Account, error)
	updateBalanceFn func(ctx context.Context, tx store.Execer, accountID string, balance int64) error
	listFn          func(ctx context.Context, customerID string) ([]store.Account, error)
}

func (s stubAccountStore) Create(ctx context.Context, tx store.Execer, id, customerID, kind string, balance int64) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, customerID, kind, balance)
}

func (s stubAccountStore) Get(ctx context.Context, q store.Getter, accountID string) (store.Account, error) {
	if s.getFn == nil {
		return store.Account{}, nil
	}
	return s.getFn(ctx, q, accountID)
}

func (s stubAccountStore) GetByID(ctx context.Context, accountID string) (store.Account, error) {
	if s.getByIDFn == nil {
		return store.Account{}, nil
	}
	return s.getByIDFn(ctx, accountID)
}

func (s stubAccountStore) PrimaryForCustomer(ctx context.Context, q store.Getter, customerID string) (store.Account, error) {
	if s.primaryFn == nil {
		return store.Account{}, nil
	}
	return s.primaryFn(ctx, q, customerID)
}

func (s stubAccountStore) UpdateBalance(ctx context.Context, tx store.Execer, accountID string, balance int64) error {
	if s.updateBalanceFn == nil {
		return nil
	}
	return s.updateBalanceFn(ctx, tx, accountID, balance)
}

func (s stubAccountStore) ListByCustomer(ctx context.Context, customerID string) ([]store.Account, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, customerID)
}

type stubCardStore struct {
	createFn            func(ctx context.Context, tx store.Execer, id, customerID string, creditLimit int64) error
	getFn               func(ctx context.Context, q store.Getter, cardID string) (store.CreditCard, error)
	getByIDFn           func(ctx context.Context, cardID string) (store.CreditCard, error)
	updateOutstandingFn func(ctx context.Context, tx store.Execer, cardID string, outstanding int64) error
}

func (s stubCardStore) Create(ctx context.Context, tx store.Execer, id, customerID string, creditLimit int64) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, customerID, creditLimit)
}

func (s stubCardStore) Get(ctx context.Context, q store.Getter, cardID string) (store.CreditCard, error) {
	if s.getFn == nil {
		return store.CreditCard{}, nil
	}
	return s.getFn(ctx, q, cardID)
}

func (s stubCardStore) GetByID(ctx context.Context, cardID string) (store.CreditCard, error) {
	if s.getByIDFn == nil {
		return store.CreditCard{}, nil
	}
	return s.getByIDFn(ctx, cardID)
}

func (s stubCardStore) UpdateOutstanding(ctx context.Context, tx store.Execer, cardID string, outstanding int64) error {
	if s.updateOutstandingFn == nil {
		return nil
	}
	return s.updateOutstandingFn(ctx, tx, cardID, outstanding)
}

type stubLoanStore struct {
	createFn  func(ctx context.Context, tx store.Execer, id, customerID string, principal int64, interestRate, status string) error
	getFn     func(ctx context.Context, q store.Getter, loanID string) (store.Loan, error)
	getByIDFn func(ctx context.Context, loanID string) (store.Loan, error)
	decideFn  func(ctx context.Context, tx store.Execer, loanID, status string, employeeID *string) (int64, error)
}

func (s stubLoanStore) Create(ctx context.Context, tx store.Execer, id, customerID string, principal int64, interestRate, status string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, customerID, principal, interestRate, status)
}

func (s stubLoanStore) Get(ctx context.Context, q store.Getter, loanID string) (store.Loan, error) {
	if s.getFn == nil {
		return store.Loan{}, nil
	}
	return s.getFn(ctx, q, loanID)
}

func (s stubLoanStore) GetByID(ctx context.Context, loanID string) (store.Loan, error) {
	if s.getByIDFn == nil {
		return store.Loan{}, nil
	}
	return s.getByIDFn(ctx, loanID)
}

func (s stubLoanStore) Decide(ctx context.Context, tx store.Execer, loanID, status string, employeeID *string) (int64, error) {
	if s.decideFn == nil {
		return 1, nil
	}
	return s.decideFn(ctx, tx, loanID, status, employeeID)
}

type stubCustomerDirectory struct {
	existsFn func(ctx context.Context, q store.Getter, customerID string) (bool, error)
}

func (s stubCustomerDirectory) Exists(ctx context.Context, q store.Getter, customerID string) (bool, error) {
	if s.existsFn == nil {
		return true, nil
	}
	return s.existsFn(ctx, q, customerID)
}

type stubEmployeeDirectory struct {
	existsFn func(ctx context.Context, q store.Getter, employeeID string) (bool, error)
}

func (s stubEmployeeDirectory) Exists(ctx context.Context, q store.Getter, employeeID string) (bool, error) {
	if s.existsFn == nil {
		return true, nil
	}
	return s.existsFn(ctx, q, employeeID)
}

// recordingTransactionStore captures every appended audit row.
type recordingTransactionStore struct {
	appended  []store.TransactionInput
	appendErr error
}

func (r *recordingTransactionStore) Append(_ context.Context, _ store.Execer, input store.TransactionInput) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.appended = append(r.appended, input)
	return nil
}

func (r *recordingTransactionStore) ListByAccount(context.Context, string) ([]store.Transaction, error) {
	return nil, nil
}

func (r *recordingTransactionStore) ListByCard(context.Context, string) ([]store.Transaction, error) {
	return nil, nil
}

func (r *recordingTransactionStore) ListByLoan(context.Context, string) ([]store.Transaction, error) {
	return nil, nil
}
