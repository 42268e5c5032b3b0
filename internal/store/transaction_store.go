package store

import "context"

// TransactionStore appends the immutable audit trail. Rows are never
// updated or deleted; insertion order is the total order of business
// events, rejected attempts included.
type TransactionStore struct {
	db DB
}

type Transaction struct {
	ID           string  `db:"id"`
	AccountID    *string `db:"account_id"`
	CardID       *string `db:"card_id"`
	LoanID       *string `db:"loan_id"`
	Type         string  `db:"type"`
	Amount       int64   `db:"amount"`
	BalanceAfter int64   `db:"balance_after"`
	Outcome      string  `db:"outcome"`
	Reason       *string `db:"reason"`
	CreatedAt    any     `db:"created_at"`
}

type TransactionInput struct {
	ID           string
	AccountID    *string
	CardID       *string
	LoanID       *string
	Type         string
	Amount       int64
	BalanceAfter int64
	Outcome      string
	Reason       *string
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Append(ctx context.Context, tx Execer, input TransactionInput) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, account_id, card_id, loan_id, type, amount, balance_after, outcome, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.ID, input.AccountID, input.CardID, input.LoanID,
		input.Type, input.Amount, input.BalanceAfter, input.Outcome, input.Reason)
	return err
}

func (s *TransactionStore) ListByAccount(ctx context.Context, accountID string) ([]Transaction, error) {
	var rows []Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, account_id, card_id, loan_id, type, amount, balance_after, outcome, reason, created_at
		FROM transactions
		WHERE account_id = ?
		ORDER BY rowid
	`, accountID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) ListByCard(ctx context.Context, cardID string) ([]Transaction, error) {
	var rows []Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, account_id, card_id, loan_id, type, amount, balance_after, outcome, reason, created_at
		FROM transactions
		WHERE card_id = ?
		ORDER BY rowid
	`, cardID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) ListByLoan(ctx context.Context, loanID string) ([]Transaction, error) {
	var rows []Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, account_id, card_id, loan_id, type, amount, balance_after, outcome, reason, created_at
		FROM transactions
		WHERE loan_id = ?
		ORDER BY rowid
	`, loanID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
