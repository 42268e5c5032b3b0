package store

import "context"

type EmployeeStore struct {
	db DB
}

type Employee struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Role      string `db:"role"`
	CreatedAt any    `db:"created_at"`
}

func NewEmployeeStore(db DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func (s *EmployeeStore) Create(ctx context.Context, tx Execer, id, name, role string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO employees (id, name, role)
		VALUES (?, ?, ?)
	`, id, name, role)
	return err
}

func (s *EmployeeStore) GetByID(ctx context.Context, employeeID string) (Employee, error) {
	var row Employee
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, role, created_at
		FROM employees
		WHERE id = ?
	`, employeeID)
	if err != nil {
		return Employee{}, err
	}
	return row, nil
}

func (s *EmployeeStore) Exists(ctx context.Context, q Getter, employeeID string) (bool, error) {
	var exists bool
	err := q.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM employees WHERE id = ?)
	`, employeeID)
	return exists, err
}
