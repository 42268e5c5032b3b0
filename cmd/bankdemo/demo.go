package main

import (
	"context"

	"corebank/internal/money"
	"corebank/internal/services"
)

type bank struct {
	customers *services.CustomerService
	employees *services.EmployeeService
	accounts  *services.AccountService
	cards     *services.CardService
	loans     *services.LoanService
}

// runDemo walks the sample sequence: enrollment, account operations
// including rejected ones, a credit card at its limit, and a loan decided
// twice. Business rejections are expected along the way; only storage
// failures abort the run.
func runDemo(ctx context.Context, b bank) error {
	customer, err := b.customers.Enroll(ctx, "Alice Hartley", "12 Harbor Lane, Kingsport")
	if err != nil {
		return err
	}
	officer, err := b.employees.Onboard(ctx, "Ben Okafor", "Loan Officer")
	if err != nil {
		return err
	}

	account, err := b.accounts.Open(ctx, customer.ID, "checking", minor("100.00"))
	if err != nil {
		return err
	}
	steps := []func() error{
		func() error { _, err := b.accounts.Deposit(ctx, account.ID, minor("50.00")); return err },
		func() error { _, err := b.accounts.Withdraw(ctx, account.ID, minor("200.00")); return err },
		func() error { _, err := b.accounts.Withdraw(ctx, account.ID, minor("150.00")); return err },
	}
	for _, step := range steps {
		if err := step(); err != nil && !services.IsRejection(err) {
			return err
		}
	}

	card, err := b.cards.Issue(ctx, customer.ID, minor("500.00"))
	if err != nil {
		return err
	}
	for _, amount := range []int64{minor("300.00"), minor("250.00")} {
		if _, err := b.cards.Purchase(ctx, card.ID, amount); err != nil && !services.IsRejection(err) {
			return err
		}
	}

	loan, err := b.loans.Apply(ctx, customer.ID, minor("1000.00"), "0.05")
	if err != nil {
		return err
	}
	if _, err := b.loans.Decide(ctx, loan.ID, officer.ID, true); err != nil && !services.IsRejection(err) {
		return err
	}
	if _, err := b.loans.Decide(ctx, loan.ID, officer.ID, false); err != nil && !services.IsRejection(err) {
		return err
	}
	return nil
}

func minor(amount string) int64 {
	value, err := money.ParseMinor(amount)
	if err != nil {
		panic(err)
	}
	return value
}
