// backend/src/processors/interfaces.go
package processors

import "github.com/username/masdompet/backend/src/models"

// SummaryProcessor folds the ledger, debts and investments into the dashboard aggregate.
type SummaryProcessor interface {
	Process(txs []models.Transaction, debts []models.Debt, investments []models.Investment) models.Summary
}
