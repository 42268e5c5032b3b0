package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"corebank/internal/db"
	"corebank/internal/money"
	"corebank/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type AccountStore interface {
	Create(ctx context.Context, tx store.Execer, id, customerID, kind string, balance int64) error
	Get(ctx context.Context, q store.Getter, accountID string) (store.Account, error)
	GetByID(ctx context.Context, accountID string) (store.Account, error)
	PrimaryForCustomer(ctx context.Context, q store.Getter, customerID string) (store.Account, error)
	UpdateBalance(ctx context.Context, tx store.Execer, accountID string, balance int64) error
	ListByCustomer(ctx context.Context, customerID string) ([]store.Account, error)
}

// CustomerDirectory is the referential-integrity check entity creation runs
// before inserting a child row.
type CustomerDirectory interface {
	Exists(ctx context.Context, q store.Getter, customerID string) (bool, error)
}

type AccountService struct {
	txRunner     db.TxRunner
	accounts     AccountStore
	customers    CustomerDirectory
	transactions TransactionStore
	log          *slog.Logger
}

func NewAccountService(txRunner db.TxRunner, accounts AccountStore, customers CustomerDirectory, transactions TransactionStore, log *slog.Logger) *AccountService {
	return &AccountService{
		txRunner:     txRunner,
		accounts:     accounts,
		customers:    customers,
		transactions: transactions,
		log:          log,
	}
}

// Open creates an account with an opening balance for an existing customer.
func (s *AccountService) Open(ctx context.Context, customerID, kind string, openingBalance int64) (store.Account, error) {
	if kind != "checking" && kind != "savings" {
		s.log.Warn("account open rejected", "customer_id", customerID, "reason", ErrInvalidAccountKind.Error())
		return store.Account{}, ErrInvalidAccountKind
	}
	if openingBalance < 0 {
		s.log.Warn("account open rejected", "customer_id", customerID, "reason", ErrInvalidAmount.Error())
		return store.Account{}, ErrInvalidAmount
	}
	account := store.Account{ID: uuid.NewString(), CustomerID: customerID, Kind: kind, Balance: openingBalance}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.customers.Exists(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCustomerNotFound
		}
		return s.accounts.Create(ctx, tx, account.ID, customerID, kind, openingBalance)
	})
	if err != nil {
		return store.Account{}, s.fail("account open", "customer_id", customerID, err)
	}
	s.log.Info("account opened", "account_id", account.ID, "customer_id", customerID,
		"kind", kind, "balance", money.FormatMinor(openingBalance))
	return account, nil
}

// Deposit credits the account. On rejection the balance is unchanged and a
// rejected transaction row is still committed; the unchanged balance is
// returned alongside the rejection.
func (s *AccountService) Deposit(ctx context.Context, accountID string, amount int64) (int64, error) {
	return s.mutateBalance(ctx, accountID, "deposit", amount, func(balance int64) (int64, error) {
		if amount <= 0 {
			return balance, ErrInvalidAmount
		}
		return balance + amount, nil
	})
}

// Withdraw debits the account. Rejected when the amount is not positive or
// exceeds the current balance; the rejected attempt is audited either way.
func (s *AccountService) Withdraw(ctx context.Context, accountID string, amount int64) (int64, error) {
	return s.mutateBalance(ctx, accountID, "withdraw", amount, func(balance int64) (int64, error) {
		if amount <= 0 {
			return balance, ErrInvalidAmount
		}
		if amount > balance {
			return balance, ErrInsufficientFunds
		}
		return balance - amount, nil
	})
}

func (s *AccountService) mutateBalance(ctx context.Context, accountID, txType string, amount int64, apply func(balance int64) (int64, error)) (int64, error) {
	var balanceAfter int64
	var rejection error
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		account, err := s.accounts.Get(ctx, tx, accountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrAccountNotFound
			}
			return err
		}
		balanceAfter, rejection = apply(account.Balance)
		if rejection == nil && balanceAfter != account.Balance {
			if err := s.accounts.UpdateBalance(ctx, tx, accountID, balanceAfter); err != nil {
				return err
			}
		}
		input := newTransactionInput(txType, amount, balanceAfter, rejection)
		input.AccountID = &accountID
		return s.transactions.Append(ctx, tx, input)
	})
	switch {
	case err != nil:
		return 0, s.fail(txType, "account_id", accountID, err)
	case rejection != nil:
		s.log.Warn(txType+" rejected", "account_id", accountID,
			"amount", money.FormatMinor(amount), "reason", rejection.Error())
		return balanceAfter, rejection
	}
	s.log.Info(txType+" completed", "account_id", accountID,
		"amount", money.FormatMinor(amount), "balance", money.FormatMinor(balanceAfter))
	return balanceAfter, nil
}

func (s *AccountService) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrAccountNotFound
		}
		return 0, db.Classify(err)
	}
	return account.Balance, nil
}

// History returns the account's audit trail in event order.
func (s *AccountService) History(ctx context.Context, accountID string) ([]store.Transaction, error) {
	rows, err := s.transactions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, db.Classify(err)
	}
	return rows, nil
}

func (s *AccountService) ListByCustomer(ctx context.Context, customerID string) ([]store.Account, error) {
	rows, err := s.accounts.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, db.Classify(err)
	}
	return rows, nil
}

func (s *AccountService) fail(op, idKey, id string, err error) error {
	if IsRejection(err) {
		s.log.Warn(op+" rejected", idKey, id, "reason", err.Error())
		return err
	}
	classified := db.Classify(err)
	s.log.Error(op+" failed", idKey, id, "error", classified.Error())
	return classified
}
