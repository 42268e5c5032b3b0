package store

import "context"

type CardStore struct {
	db DB
}

type CreditCard struct {
	ID          string `db:"id"`
	CustomerID  string `db:"customer_id"`
	CreditLimit int64  `db:"credit_limit"`
	Outstanding int64  `db:"outstanding"`
	CreatedAt   any    `db:"created_at"`
}

func NewCardStore(db DB) *CardStore {
	return &CardStore{db: db}
}

func (s *CardStore) Create(ctx context.Context, tx Execer, id, customerID string, creditLimit int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credit_cards (id, customer_id, credit_limit, outstanding)
		VALUES (?, ?, ?, 0)
	`, id, customerID, creditLimit)
	return err
}

func (s *CardStore) GetByID(ctx context.Context, cardID string) (CreditCard, error) {
	var row CreditCard
	err := s.db.GetContext(ctx, &row, `
		SELECT id, customer_id, credit_limit, outstanding, created_at
		FROM credit_cards
		WHERE id = ?
	`, cardID)
	if err != nil {
		return CreditCard{}, err
	}
	return row, nil
}

func (s *CardStore) Get(ctx context.Context, q Getter, cardID string) (CreditCard, error) {
	var row CreditCard
	err := q.GetContext(ctx, &row, `
		SELECT id, customer_id, credit_limit, outstanding
		FROM credit_cards
		WHERE id = ?
	`, cardID)
	if err != nil {
		return CreditCard{}, err
	}
	return row, nil
}

func (s *CardStore) UpdateOutstanding(ctx context.Context, tx Execer, cardID string, outstanding int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE credit_cards
		SET outstanding = ?
		WHERE id = ?
	`, outstanding, cardID)
	return err
}
