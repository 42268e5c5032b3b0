package store

import "context"

type LoanStore struct {
	db DB
}

type Loan struct {
	ID           string  `db:"id"`
	CustomerID   string  `db:"customer_id"`
	Principal    int64   `db:"principal"`
	InterestRate string  `db:"interest_rate"`
	Status       string  `db:"status"`
	ApprovedBy   *string `db:"approved_by"`
	CreatedAt    any     `db:"created_at"`
}

func NewLoanStore(db DB) *LoanStore {
	return &LoanStore{db: db}
}

func (s *LoanStore) Create(ctx context.Context, tx Execer, id, customerID string, principal int64, interestRate, status string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO loans (id, customer_id, principal, interest_rate, status)
		VALUES (?, ?, ?, ?, ?)
	`, id, customerID, principal, interestRate, status)
	return err
}

func (s *LoanStore) GetByID(ctx context.Context, loanID string) (Loan, error) {
	var row Loan
	err := s.db.GetContext(ctx, &row, `
		SELECT id, customer_id, principal, interest_rate, status, approved_by, created_at
		FROM loans
		WHERE id = ?
	`, loanID)
	if err != nil {
		return Loan{}, err
	}
	return row, nil
}

func (s *LoanStore) Get(ctx context.Context, q Getter, loanID string) (Loan, error) {
	var row Loan
	err := q.GetContext(ctx, &row, `
		SELECT id, customer_id, principal, interest_rate, status, approved_by
		FROM loans
		WHERE id = ?
	`, loanID)
	if err != nil {
		return Loan{}, err
	}
	return row, nil
}

// Decide moves a pending loan to its terminal status. The status guard in
// the statement makes the transition exactly-once: a loan that is no longer
// pending reports zero rows affected.
func (s *LoanStore) Decide(ctx context.Context, tx Execer, loanID, status string, employeeID *string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE loans
		SET status = ?, approved_by = ?
		WHERE id = ? AND status = 'pending'
	`, status, employeeID, loanID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *LoanStore) ListByCustomer(ctx context.Context, customerID string) ([]Loan, error) {
	var rows []Loan
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, principal, interest_rate, status, approved_by, created_at
		FROM loans
		WHERE customer_id = ?
		ORDER BY rowid
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
