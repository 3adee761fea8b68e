// backend/src/services/interfaces.go
package services

import (
	"context"
	"io"

	"github.com/username/masdompet/backend/src/models"
)

// LedgerService manages user-entered income and expense entries.
type LedgerService interface {
	CreateTransaction(ctx context.Context, input models.TransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context) ([]models.Transaction, error)
	ListTransactionsByCategory(ctx context.Context, category string) ([]models.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (*models.Transaction, error)
	// UpdateTransaction rejects companion transactions with ErrImmutable.
	UpdateTransaction(ctx context.Context, id int64, input models.TransactionInput) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	// BulkCreateTransactions inserts every input or none of them.
	BulkCreateTransactions(ctx context.Context, inputs []models.TransactionInput) ([]models.Transaction, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

// DebtService manages payables and receivables.
type DebtService interface {
	CreateDebt(ctx context.Context, input models.DebtInput) (*models.Debt, error)
	ListDebts(ctx context.Context) ([]models.Debt, error)
	DeleteDebt(ctx context.Context, id int64) error
	ToggleDebtStatus(ctx context.Context, id int64) (*models.Debt, error)
	// PayDebt pays amount, or the full remaining balance when amount is nil,
	// and records the payment in the ledger in the same database transaction.
	PayDebt(ctx context.Context, id int64, amount *int64) (*models.DebtPayment, error)
}

type InvestmentService interface {
	CreateInvestment(ctx context.Context, input models.InvestmentInput) (*models.Investment, error)
	ListInvestments(ctx context.Context) ([]models.Investment, error)
	UpdateInvestmentValue(ctx context.Context, id int64, value int64) (*models.Investment, error)
	WithdrawInvestment(ctx context.Context, id int64) (*models.InvestmentWithdrawal, error)
	DeleteInvestment(ctx context.Context, id int64) error
}

type GoalService interface {
	CreateGoal(ctx context.Context, input models.GoalInput) (*models.GoalDetail, error)
	ListGoals(ctx context.Context) ([]models.GoalDetail, error)
	GetGoal(ctx context.Context, id int64) (*models.GoalDetail, error)
	DeleteGoal(ctx context.Context, id int64) error
	UpdateGoalTarget(ctx context.Context, id int64, target int64) (*models.GoalDetail, error)
	SyncTargetFromBreakdown(ctx context.Context, id int64) (*models.GoalDetail, error)
	ListBreakdown(ctx context.Context, goalID int64) ([]models.GoalBreakdownItem, error)
	AddBreakdownItem(ctx context.Context, goalID int64, input models.BreakdownItemInput) (*models.GoalBreakdownItem, error)
	DeleteBreakdownItem(ctx context.Context, itemID int64) error
	ContributeToGoal(ctx context.Context, id int64, amount int64) (*models.GoalMovement, error)
	WithdrawFromGoal(ctx context.Context, id int64, amount int64) (*models.GoalMovement, error)
}

type CategoryService interface {
	ListCategories(ctx context.Context, typ models.TransactionType) ([]models.Category, error)
	CreateCategory(ctx context.Context, input models.CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// SummaryService serves the dashboard aggregate.
type SummaryService interface {
	GetSummary(ctx context.Context) (*models.Summary, error)
	Invalidate()
}

// ImportService validates uploaded CSV files and stores their rows.
type ImportService interface {
	Preview(ctx context.Context, file io.Reader, source string) (*models.ImportResult, error)
	// Import stores the valid rows atomically. In strict mode nothing is
	// stored when any row was rejected.
	Import(ctx context.Context, file io.Reader, source string, strict bool) (*models.ImportResult, error)
}
