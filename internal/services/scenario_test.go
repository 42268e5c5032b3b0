package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"corebank/internal/db"
	"corebank/internal/store"
)

// These tests run the full stack against a real database file: schema
// constraints, transaction boundaries and the audit trail included.

type testBank struct {
	customers    *CustomerService
	employees    *EmployeeService
	accounts     *AccountService
	cards        *CardService
	loans        *LoanService
	transactions *store.TransactionStore
}

func newTestBank(t *testing.T) testBank {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "bank_test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Init(context.Background(), database); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	customers := store.NewCustomerStore(database)
	employees := store.NewEmployeeStore(database)
	accounts := store.NewAccountStore(database)
	loans := store.NewLoanStore(database)
	cards := store.NewCardStore(database)
	transactions := store.NewTransactionStore(database)
	txRunner := db.NewTxRunner(database)
	logger := discardLogger()

	return testBank{
		customers:    NewCustomerService(txRunner, customers, logger),
		employees:    NewEmployeeService(txRunner, employees, logger),
		accounts:     NewAccountService(txRunner, accounts, customers, transactions, logger),
		cards:        NewCardService(txRunner, cards, customers, transactions, logger),
		loans:        NewLoanService(txRunner, loans, accounts, customers, employees, transactions, logger),
		transactions: transactions,
	}
}

func TestAccountScenario(t *testing.T) {
	bank := newTestBank(t)
	ctx := context.Background()

	customer, err := bank.customers.Enroll(ctx, "Alice Hartley", "12 Harbor Lane")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	account, err := bank.accounts.Open(ctx, customer.ID, "checking", 10000)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	balance, err := bank.accounts.Deposit(ctx, account.ID, 5000)
	if err != nil || balance != 15000 {
		t.Fatalf("deposit: balance %d, err %v", balance, err)
	}
	balance, err = bank.accounts.Withdraw(ctx, account.ID, 20000)
	if !errors.Is(err, ErrInsufficientFunds) || balance != 15000 {
		t.Fatalf("overdraft: balance %d, err %v", balance, err)
	}
	balance, err = bank.accounts.Withdraw(ctx, account.ID, 15000)
	if err != nil || balance != 0 {
		t.Fatalf("drain: balance %d, err %v", balance, err)
	}

	history, err := bank.accounts.History(ctx, account.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 audit rows, got %d", len(history))
	}
	rejected := history[1]
	if rejected.Outcome != "rejected" || rejected.Reason == nil || *rejected.Reason != ErrInsufficientFunds.Error() {
		t.Fatalf("unexpected rejected row: %#v", rejected)
	}
	if rejected.BalanceAfter != 15000 {
		t.Fatalf("rejected row must carry the unchanged balance: %#v", rejected)
	}
	if history[2].BalanceAfter != 0 {
		t.Fatalf("final balance mismatch: %#v", history[2])
	}
}

func TestCardScenario(t *testing.T) {
	bank := newTestBank(t)
	ctx := context.Background()

	customer, err := bank.customers.Enroll(ctx, "Nadia Osei", "3 Mill Road")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	card, err := bank.cards.Issue(ctx, customer.ID, 50000)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	outstanding, err := bank.cards.Purchase(ctx, card.ID, 30000)
	if err != nil || outstanding != 30000 {
		t.Fatalf("purchase: outstanding %d, err %v", outstanding, err)
	}
	outstanding, err = bank.cards.Purchase(ctx, card.ID, 25000)
	if !errors.Is(err, ErrCreditLimitExceeded) || outstanding != 30000 {
		t.Fatalf("over limit: outstanding %d, err %v", outstanding, err)
	}

	available, err := bank.cards.AvailableCredit(ctx, card.ID)
	if err != nil || available != 20000 {
		t.Fatalf("available credit: %d, err %v", available, err)
	}
	history, err := bank.cards.History(ctx, card.ID)
	if err != nil || len(history) != 2 {
		t.Fatalf("history: %d rows, err %v", len(history), err)
	}
	if history[1].Outcome != "rejected" {
		t.Fatalf("unexpected history: %#v", history)
	}
}

func TestLoanScenario(t *testing.T) {
	bank := newTestBank(t)
	ctx := context.Background()

	customer, err := bank.customers.Enroll(ctx, "Tomás Rivera", "88 Quay Street")
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	officer, err := bank.employees.Onboard(ctx, "Ben Okafor", "Loan Officer")
	if err != nil {
		t.Fatalf("onboard: %v", err)
	}
	account, err := bank.accounts.Open(ctx, customer.ID, "savings", 0)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	loan, err := bank.loans.Apply(ctx, customer.ID, 100000, "0.05")
	if err != nil || loan.Status != "pending" {
		t.Fatalf("apply: %#v, err %v", loan, err)
	}

	decided, err := bank.loans.Decide(ctx, loan.ID, officer.ID, true)
	if err != nil || decided.Status != "approved" {
		t.Fatalf("decide: %#v, err %v", decided, err)
	}
	balance, err := bank.accounts.Balance(ctx, account.ID)
	if err != nil || balance != 100000 {
		t.Fatalf("disbursed balance: %d, err %v", balance, err)
	}

	again, err := bank.loans.Decide(ctx, loan.ID, officer.ID, false)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
	if again.Status != "approved" {
		t.Fatalf("status must survive a re-decision attempt: %#v", again)
	}

	trail, err := bank.transactions.ListByLoan(ctx, loan.ID)
	if err != nil {
		t.Fatalf("trail: %v", err)
	}
	// decision, disbursement, rejected re-decision
	if len(trail) != 3 {
		t.Fatalf("expected 3 audit rows, got %d", len(trail))
	}
	if trail[1].Type != "loan_disbursement" || trail[1].BalanceAfter != 100000 {
		t.Fatalf("unexpected disbursement row: %#v", trail[1])
	}
	if trail[2].Outcome != "rejected" {
		t.Fatalf("unexpected re-decision row: %#v", trail[2])
	}

	total, err := TotalPayable(decided)
	if err != nil || total != 105000 {
		t.Fatalf("total payable: %d, err %v", total, err)
	}
}

func TestCreateRejectsUnknownCustomer(t *testing.T) {
	bank := newTestBank(t)
	ctx := context.Background()

	if _, err := bank.accounts.Open(ctx, "no-such-customer", "checking", 0); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("open: expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := bank.cards.Issue(ctx, "no-such-customer", 1000); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("issue: expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := bank.loans.Apply(ctx, "no-such-customer", 1000, "0.05"); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("apply: expected ErrCustomerNotFound, got %v", err)
	}
}
