package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"corebank/internal/db"
	"corebank/internal/money"
	"corebank/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CardStore interface {
	Create(ctx context.Context, tx store.Execer, id, customerID string, creditLimit int64) error
	Get(ctx context.Context, q store.Getter, cardID string) (store.CreditCard, error)
	GetByID(ctx context.Context, cardID string) (store.CreditCard, error)
	UpdateOutstanding(ctx context.Context, tx store.Execer, cardID string, outstanding int64) error
}

type CardService struct {
	txRunner     db.TxRunner
	cards        CardStore
	customers    CustomerDirectory
	transactions TransactionStore
	log          *slog.Logger
}

func NewCardService(txRunner db.TxRunner, cards CardStore, customers CustomerDirectory, transactions TransactionStore, log *slog.Logger) *CardService {
	return &CardService{
		txRunner:     txRunner,
		cards:        cards,
		customers:    customers,
		transactions: transactions,
		log:          log,
	}
}

func (s *CardService) Issue(ctx context.Context, customerID string, creditLimit int64) (store.CreditCard, error) {
	if creditLimit <= 0 {
		s.log.Warn("card issue rejected", "customer_id", customerID, "reason", ErrInvalidCreditLimit.Error())
		return store.CreditCard{}, ErrInvalidCreditLimit
	}
	card := store.CreditCard{ID: uuid.NewString(), CustomerID: customerID, CreditLimit: creditLimit}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		exists, err := s.customers.Exists(ctx, tx, customerID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrCustomerNotFound
		}
		return s.cards.Create(ctx, tx, card.ID, customerID, creditLimit)
	})
	if err != nil {
		return store.CreditCard{}, s.fail("card issue", "customer_id", customerID, err)
	}
	s.log.Info("credit card issued", "card_id", card.ID, "customer_id", customerID,
		"limit", money.FormatMinor(creditLimit))
	return card, nil
}

// Purchase raises the card's outstanding balance. Purchases that would
// push the balance over the limit leave it unchanged and commit a rejected
// transaction row; the unchanged balance is returned with the rejection.
func (s *CardService) Purchase(ctx context.Context, cardID string, amount int64) (int64, error) {
	var outstandingAfter int64
	var rejection error
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		card, err := s.cards.Get(ctx, tx, cardID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrCardNotFound
			}
			return err
		}
		outstandingAfter = card.Outstanding
		switch {
		case amount <= 0:
			rejection = ErrInvalidAmount
		case card.Outstanding+amount > card.CreditLimit:
			rejection = ErrCreditLimitExceeded
		default:
			outstandingAfter = card.Outstanding + amount
			if err := s.cards.UpdateOutstanding(ctx, tx, cardID, outstandingAfter); err != nil {
				return err
			}
		}
		input := newTransactionInput("purchase", amount, outstandingAfter, rejection)
		input.CardID = &cardID
		return s.transactions.Append(ctx, tx, input)
	})
	switch {
	case err != nil:
		return 0, s.fail("purchase", "card_id", cardID, err)
	case rejection != nil:
		s.log.Warn("purchase rejected", "card_id", cardID,
			"amount", money.FormatMinor(amount), "reason", rejection.Error())
		return outstandingAfter, rejection
	}
	s.log.Info("purchase completed", "card_id", cardID,
		"amount", money.FormatMinor(amount), "outstanding", money.FormatMinor(outstandingAfter))
	return outstandingAfter, nil
}

func (s *CardService) AvailableCredit(ctx context.Context, cardID string) (int64, error) {
	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrCardNotFound
		}
		return 0, db.Classify(err)
	}
	return card.CreditLimit - card.Outstanding, nil
}

func (s *CardService) History(ctx context.Context, cardID string) ([]store.Transaction, error) {
	rows, err := s.transactions.ListByCard(ctx, cardID)
	if err != nil {
		return nil, db.Classify(err)
	}
	return rows, nil
}

func (s *CardService) fail(op, idKey, id string, err error) error {
	if IsRejection(err) {
		s.log.Warn(op+" rejected", idKey, id, "reason", err.Error())
		return err
	}
	classified := db.Classify(err)
	s.log.Error(op+" failed", idKey, id, "error", classified.Error())
	return classified
}
