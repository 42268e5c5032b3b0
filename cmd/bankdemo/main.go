package main

import (
	"context"
	"os"

	"corebank/internal/config"
	"corebank/internal/db"
	"corebank/internal/services"
	"corebank/internal/store"
)

func main() {
	cfg := config.Load()
	logger := setupLogger(cfg)

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err.Error())
		os.Exit(1)
	}
	defer database.Close()

	ctx := context.Background()
	if err := db.Init(ctx, database); err != nil {
		logger.Error("failed to initialize schema", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("database initialized", "path", cfg.DatabasePath)

	customers := store.NewCustomerStore(database)
	employees := store.NewEmployeeStore(database)
	accounts := store.NewAccountStore(database)
	loans := store.NewLoanStore(database)
	cards := store.NewCardStore(database)
	transactions := store.NewTransactionStore(database)
	txRunner := db.NewTxRunner(database)

	bank := bank{
		customers: services.NewCustomerService(txRunner, customers, logger),
		employees: services.NewEmployeeService(txRunner, employees, logger),
		accounts:  services.NewAccountService(txRunner, accounts, customers, transactions, logger),
		cards:     services.NewCardService(txRunner, cards, customers, transactions, logger),
		loans:     services.NewLoanService(txRunner, loans, accounts, customers, employees, transactions, logger),
	}

	if err := runDemo(ctx, bank); err != nil {
		logger.Error("demonstration aborted", "error", err.Error())
		os.Exit(1)
	}
	logger.Info("demonstration complete")
}
