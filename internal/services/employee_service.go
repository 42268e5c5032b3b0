package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"corebank/internal/db"
	"corebank/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EmployeeStore interface {
	Create(ctx context.Context, tx store.Execer, id, name, role string) error
	GetByID(ctx context.Context, employeeID string) (store.Employee, error)
	Exists(ctx context.Context, q store.Getter, employeeID string) (bool, error)
}

type EmployeeService struct {
	txRunner  db.TxRunner
	employees EmployeeStore
	log       *slog.Logger
}

func NewEmployeeService(txRunner db.TxRunner, employees EmployeeStore, log *slog.Logger) *EmployeeService {
	return &EmployeeService{txRunner: txRunner, employees: employees, log: log}
}

func (s *EmployeeService) Onboard(ctx context.Context, name, role string) (store.Employee, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.log.Warn("employee onboarding rejected", "reason", ErrNameRequired.Error())
		return store.Employee{}, ErrNameRequired
	}
	employee := store.Employee{ID: uuid.NewString(), Name: name, Role: role}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.employees.Create(ctx, tx, employee.ID, employee.Name, employee.Role)
	})
	if err != nil {
		classified := db.Classify(err)
		s.log.Error("employee onboarding failed", "name", name, "error", classified.Error())
		return store.Employee{}, classified
	}
	s.log.Info("employee onboarded", "employee_id", employee.ID, "name", employee.Name, "role", employee.Role)
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (store.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("employee lookup failed", "employee_id", employeeID, "reason", ErrEmployeeNotFound.Error())
			return store.Employee{}, ErrEmployeeNotFound
		}
		classified := db.Classify(err)
		s.log.Error("employee lookup failed", "employee_id", employeeID, "error", classified.Error())
		return store.Employee{}, classified
	}
	return employee, nil
}
