package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
	"github.com/username/masdompet/backend/src/database"
	"github.com/username/masdompet/backend/src/model"
	"github.com/username/masdompet/backend/src/models"
	"github.com/username/masdompet/backend/src/processors"
)

type testEnv struct {
	db          *sql.DB
	cache       *cache.Cache
	ledger      LedgerService
	debts       DebtService
	investments InvestmentService
	goals       GoalService
	categories  CategoryService
	summary     SummaryService
	imports     ImportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "masdompet_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	reportCache := cache.New(DefaultCacheExpiration, CacheCleanupInterval)
	tp := processors.NewTransactionProcessor("IDR")
	ledger := NewLedgerService(db, tp, reportCache)

	return &testEnv{
		db:          db,
		cache:       reportCache,
		ledger:      ledger,
		debts:       NewDebtService(db, tp, reportCache),
		investments: NewInvestmentService(db, tp, reportCache),
		goals:       NewGoalService(db, tp, reportCache),
		categories:  NewCategoryService(db, reportCache),
		summary:     NewSummaryService(db, processors.NewSummaryProcessor(), reportCache),
		imports:     NewImportService(ledger, tp),
	}
}

func (e *testEnv) transactions(t *testing.T) []models.Transaction {
	t.Helper()
	txs, err := model.ListTransactions(context.Background(), e.db)
	require.NoError(t, err)
	return txs
}

func (e *testEnv) countTransactions(t *testing.T) int {
	t.Helper()
	n, err := model.CountTransactions(context.Background(), e.db)
	require.NoError(t, err)
	return n
}

func manualInput(typ models.TransactionType, category string, amount int64) models.TransactionInput {
	return models.TransactionInput{
		Amount:   amount,
		Type:     typ,
		Category: category,
		Date:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func int64Ptr(v int64) *int64 { return &v }
