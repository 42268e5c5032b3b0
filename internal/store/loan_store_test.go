package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
)

func TestLoanStoreCreate(t *testing.T) {
	ctx := context.Background()
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "INSERT INTO loans") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 5 {
				t.Fatalf("expected 5 args, got %d", len(args))
			}
			if args[0] != "loan-1" || args[1] != "cust-1" || args[2] != int64(100000) || args[3] != "0.05" || args[4] != "pending" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 1}, nil
		},
	}
	store := NewLoanStore(stubDB{})
	if err := store.Create(ctx, execer, "loan-1", "cust-1", 100000, "0.05", "pending"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoanStoreDecideGuardsPendingStatus(t *testing.T) {
	ctx := context.Background()
	employeeID := "emp-1"
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			if !strings.Contains(query, "status = 'pending'") {
				t.Fatalf("decide statement must guard on pending status: %s", query)
			}
			if len(args) != 3 || args[0] != "approved" || args[2] != "loan-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			return stubResult{rows: 0}, nil
		},
	}
	store := NewLoanStore(stubDB{})
	affected, err := store.Decide(ctx, execer, "loan-1", "approved", &employeeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected, got %d", affected)
	}
}

func TestLoanStoreGet(t *testing.T) {
	ctx := context.Background()
	getter := stubGetter{
		getFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "FROM loans") {
				t.Fatalf("unexpected query: %s", query)
			}
			if len(args) != 1 || args[0] != "loan-1" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*Loan) = Loan{ID: "loan-1", Status: "pending", Principal: 100000}
			return nil
		},
	}
	store := NewLoanStore(stubDB{})
	row, err := store.Get(ctx, getter, "loan-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.Status != "pending" {
		t.Fatalf("unexpected row: %#v", row)
	}
}
