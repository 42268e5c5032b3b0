package services

import (
	"context"

	"corebank/internal/store"

	"github.com/google/uuid"
)

func newTransactionInput(txType string, amount, balanceAfter int64, rejection error) store.TransactionInput {
	input := store.TransactionInput{
		ID:           uuid.NewString(),
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Outcome:      "success",
	}
	if rejection != nil {
		input.Outcome = "rejected"
		reason := rejection.Error()
		input.Reason = &reason
	}
	return input
}

// TransactionStore is the recorder every state-changing operation appends
// to, inside the same atomic unit as the mutation it documents.
type TransactionStore interface {
	Append(ctx context.Context, tx store.Execer, input store.TransactionInput) error
	ListByAccount(ctx context.Context, accountID string) ([]store.Transaction, error)
	ListByCard(ctx context.Context, cardID string) ([]store.Transaction, error)
	ListByLoan(ctx context.Context, loanID string) ([]store.Transaction, error)
}
