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
	"github.com/shopspring/decimal"
)

type LoanStore interface {
	Create(ctx context.Context, tx store.Execer, id, customerID string, principal int64, interestRate, status string) error
	Get(ctx context.Context, q store.Getter, loanID string) (store.Loan, error)
	GetByID(ctx context.Context, loanID string) (store.Loan, error)
	Decide(ctx context.Context, tx store.Execer, loanID, status string, employeeID *string) (int64, error)
}

type EmployeeDirectory interface {
	Exists(ctx context.Context, q store.Getter, employeeID string) (bool, error)
}

// LoanAccountStore is the slice of account access loan disbursement needs.
type LoanAccountStore interface {
	PrimaryForCustomer(ctx context.Context, q store.Getter, customerID string) (store.Account, error)
	UpdateBalance(ctx context.Context, tx store.Execer, accountID string, balance int64) error
}

type LoanService struct {
	txRunner     db.TxRunner
	loans        LoanStore
	accounts     LoanAccountStore
	customers    CustomerDirectory
	employees    EmployeeDirectory
	transactions TransactionStore
	log          *slog.Logger
}

func NewLoanService(txRunner db.TxRunner, loans LoanStore, accounts LoanAccountStore, customers CustomerDirectory, employees EmployeeDirectory, transactions TransactionStore, log *slog.Logger) *LoanService {
	return &LoanService{
		txRunner:     txRunner,
		loans:        loans,
		accounts:     accounts,
		customers:    customers,
		employees:    employees,
		transactions: transactions,
		log:          log,
	}
}

// Apply submits a loan application in pending status. The interest rate is
// a decimal fraction, e.g. "0.05" for 5%.
func (s *LoanService) Apply(ctx context.Context, customerID string, principal int64, interestRate string) (store.Loan, error) {
	if principal <= 0 {
		s.log.Warn("loan application rejected", "customer_id", customerID, "reason", ErrInvalidAmount.Error())
		return store.Loan{}, ErrInvalidAmount
	}
	rate, err := decimal.NewFromString(interestRate)
	if err != nil || rate.IsNegative() {
		s.log.Warn("loan application rejected", "customer_id", customerID, "reason", ErrInvalidRate.Error())
		return store.Loan{}, ErrInvalidRate
	}
	loan := store.Loan{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		Principal:    principal,
		InterestRate: rate.String(),
		Status:       "pending",
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.customers.Exists(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCustomerNotFound
		}
		return s.loans.Create(ctx, tx, loan.ID, customerID, principal, loan.InterestRate, loan.Status)
	})
	if err != nil {
		return store.Loan{}, s.fail("loan application", "customer_id", customerID, err)
	}
	s.log.Info("loan application submitted", "loan_id", loan.ID, "customer_id", customerID,
		"principal", money.FormatMinor(principal), "rate", loan.InterestRate)
	return loan, nil
}

// Decide moves a pending loan to approved or rejected, exactly once.
// Approval credits the principal to the customer's primary account when one
// exists; the credit, its transaction row and the status flip commit as one
// atomic unit. Deciding an already-decided loan is rejected and audited.
func (s *LoanService) Decide(ctx context.Context, loanID, employeeID string, approve bool) (store.Loan, error) {
	var decided store.Loan
	var rejection error
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		loan, err := s.loans.Get(ctx, tx, loanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrLoanNotFound
			}
			return err
		}
		decided = loan
		if loan.Status != "pending" {
			rejection = ErrAlreadyDecided
			input := newTransactionInput("loan_decision", loan.Principal, 0, rejection)
			input.LoanID = &loanID
			return s.transactions.Append(ctx, tx, input)
		}
		exists, err := s.employees.Exists(ctx, tx, employeeID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEmployeeNotFound
		}
		status := "rejected"
		if approve {
			status = "approved"
		}
		affected, err := s.loans.Decide(ctx, tx, loanID, status, &employeeID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyDecided
		}
		decided.Status = status
		decided.ApprovedBy = &employeeID
		input := newTransactionInput("loan_decision", loan.Principal, 0, nil)
		input.LoanID = &loanID
		if err := s.transactions.Append(ctx, tx, input); err != nil {
			return err
		}
		if !approve {
			return nil
		}
		account, err := s.accounts.PrimaryForCustomer(ctx, tx, loan.CustomerID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// no account to credit; the status change and its audit
				// row stand on their own
				return nil
			}
			return err
		}
		balanceAfter := account.Balance + loan.Principal
		if err := s.accounts.UpdateBalance(ctx, tx, account.ID, balanceAfter); err != nil {
			return err
		}
		disbursement := newTransactionInput("loan_disbursement", loan.Principal, balanceAfter, nil)
		disbursement.AccountID = &account.ID
		disbursement.LoanID = &loanID
		return s.transactions.Append(ctx, tx, disbursement)
	})
	switch {
	case err != nil:
		return store.Loan{}, s.fail("loan decision", "loan_id", loanID, err)
	case rejection != nil:
		s.log.Warn("loan decision rejected", "loan_id", loanID, "reason", rejection.Error())
		return decided, rejection
	}
	s.log.Info("loan decided", "loan_id", loanID, "employee_id", employeeID, "status", decided.Status)
	return decided, nil
}

func (s *LoanService) Get(ctx context.Context, loanID string) (store.Loan, error) {
	loan, err := s.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Loan{}, ErrLoanNotFound
		}
		return store.Loan{}, db.Classify(err)
	}
	return loan, nil
}

// TotalPayable computes principal plus simple interest in minor units.
func TotalPayable(loan store.Loan) (int64, error) {
	rate, err := decimal.NewFromString(loan.InterestRate)
	if err != nil {
		return 0, ErrInvalidRate
	}
	total := decimal.NewFromInt(loan.Principal).Mul(decimal.NewFromInt(1).Add(rate))
	return total.RoundBank(0).IntPart(), nil
}

func (s *LoanService) fail(op, idKey, id string, err error) error {
	if IsRejection(err) {
		s.log.Warn(op+" rejected", idKey, id, "reason", err.Error())
		return err
	}
	classified := db.Classify(err)
	s.log.Error(op+" failed", idKey, id, "error", classified.Error())
	return classified
}
