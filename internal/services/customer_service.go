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

type CustomerStore interface {
	Create(ctx context.Context, tx store.Execer, id, name, contact string) error
	GetByID(ctx context.Context, customerID string) (store.Customer, error)
	Exists(ctx context.Context, q store.Getter, customerID string) (bool, error)
}

type CustomerService struct {
	txRunner  db.TxRunner
	customers CustomerStore
	log       *slog.Logger
}

func NewCustomerService(txRunner db.TxRunner, customers CustomerStore, log *slog.Logger) *CustomerService {
	return &CustomerService{txRunner: txRunner, customers: customers, log: log}
}

func (s *CustomerService) Enroll(ctx context.Context, name, contact string) (store.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		s.log.Warn("customer enrollment rejected", "reason", ErrNameRequired.Error())
		return store.Customer{}, ErrNameRequired
	}
	customer := store.Customer{ID: uuid.NewString(), Name: name, Contact: contact}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.customers.Create(ctx, tx, customer.ID, customer.Name, customer.Contact)
	})
	if err != nil {
		classified := db.Classify(err)
		s.log.Error("customer enrollment failed", "name", name, "error", classified.Error())
		return store.Customer{}, classified
	}
	s.log.Info("customer enrolled", "customer_id", customer.ID, "name", customer.Name)
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, customerID string) (store.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("customer lookup failed", "customer_id", customerID, "reason", ErrCustomerNotFound.Error())
			return store.Customer{}, ErrCustomerNotFound
		}
		classified := db.Classify(err)
		s.log.Error("customer lookup failed", "customer_id", customerID, "error", classified.Error())
		return store.Customer{}, classified
	}
	return customer, nil
}
