package store

import "context"

type CustomerStore struct {
	db DB
}

type Customer struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Contact   string `db:"contact"`
	CreatedAt any    `db:"created_at"`
}

func NewCustomerStore(db DB) *CustomerStore {
	return &CustomerStore{db: db}
}

func (s *CustomerStore) Create(ctx context.Context, tx Execer, id, name, contact string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO customers (id, name, contact)
		VALUES (?, ?, ?)
	`, id, name, contact)
	return err
}

func (s *CustomerStore) GetByID(ctx context.Context, customerID string) (Customer, error) {
	var row Customer
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, contact, created_at
		FROM customers
		WHERE id = ?
	`, customerID)
	if err != nil {
		return Customer{}, err
	}
	return row, nil
}

func (s *CustomerStore) Exists(ctx context.Context, q Getter, customerID string) (bool, error) {
	var exists bool
	err := q.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE id = ?)
	`, customerID)
	return exists, err
}
