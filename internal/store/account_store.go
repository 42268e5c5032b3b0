package store

import "context"

type AccountStore struct {
	db DB
}

type Account struct {
	ID         string `db:"id"`
	CustomerID string `db:"customer_id"`
	Kind       string `db:"kind"`
	Balance    int64  `db:"balance"`
	CreatedAt  any    `db:"created_at"`
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Create(ctx context.Context, tx Execer, id, customerID, kind string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO accounts (id, customer_id, kind, balance)
		VALUES (?, ?, ?, ?)
	`, id, customerID, kind, balance)
	return err
}

func (s *AccountStore) GetByID(ctx context.Context, accountID string) (Account, error) {
	var row Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, customer_id, kind, balance, created_at
		FROM accounts
		WHERE id = ?
	`, accountID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

// Get reads an account inside an open transaction, so the balance it
// returns is the one the enclosing atomic unit validates against.
func (s *AccountStore) Get(ctx context.Context, q Getter, accountID string) (Account, error) {
	var row Account
	err := q.GetContext(ctx, &row, `
		SELECT id, customer_id, kind, balance
		FROM accounts
		WHERE id = ?
	`, accountID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

// PrimaryForCustomer returns the customer's earliest-opened account.
func (s *AccountStore) PrimaryForCustomer(ctx context.Context, q Getter, customerID string) (Account, error) {
	var row Account
	err := q.GetContext(ctx, &row, `
		SELECT id, customer_id, kind, balance
		FROM accounts
		WHERE customer_id = ?
		ORDER BY rowid
		LIMIT 1
	`, customerID)
	if err != nil {
		return Account{}, err
	}
	return row, nil
}

func (s *AccountStore) UpdateBalance(ctx context.Context, tx Execer, accountID string, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET balance = ?
		WHERE id = ?
	`, balance, accountID)
	return err
}

func (s *AccountStore) ListByCustomer(ctx context.Context, customerID string) ([]Account, error) {
	var rows []Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, customer_id, kind, balance, created_at
		FROM accounts
		WHERE customer_id = ?
		ORDER BY rowid
	`, customerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
