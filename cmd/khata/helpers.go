package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/khata-app/khata/internal/common"
	"github.com/khata-app/khata/internal/config"
	"github.com/khata-app/khata/internal/storage"
)

// initStore opens the budget store with proper path expansion.
func initStore() (*storage.BudgetStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	dbPath = config.ExpandPath(dbPath)

	kv, err := storage.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
	}

	return storage.NewBudgetStore(kv, viper.GetString("budget.passcode")), nil
}
