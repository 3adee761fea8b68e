// backend/src/processors/summary_processor.go
package processors

import (
	"sort"

	"github.com/username/masdompet/backend/src/models"
)

type summaryProcessorImpl struct{}

func NewSummaryProcessor() SummaryProcessor {
	return &summaryProcessorImpl{}
}

// Process is a pure fold. Paid debts are excluded from the outstanding totals,
// and an investment counts at its current value when one is recorded.
func (p *summaryProcessorImpl) Process(txs []models.Transaction, debts []models.Debt, investments []models.Investment) models.Summary {
	summary := models.Summary{
		IncomeByCategory:  make(map[string]int64),
		ExpenseByCategory: make(map[string]int64),
	}

	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			summary.Income += tx.Amount
			summary.IncomeByCategory[tx.Category] += tx.Amount
		case models.TransactionExpense:
			summary.Expense += tx.Amount
			summary.ExpenseByCategory[tx.Category] += tx.Amount
		}
	}
	summary.Balance = summary.Income - summary.Expense

	for _, d := range debts {
		if d.IsPaid {
			continue
		}
		switch d.Type {
		case models.DebtPayable:
			summary.Payable += d.Amount
		case models.DebtReceivable:
			summary.Receivable += d.Amount
		}
	}

	for _, inv := range investments {
		summary.TotalInvestment += inv.Value()
	}

	summary.IncomeChartData = chartData(summary.IncomeByCategory)
	summary.ExpenseChartData = chartData(summary.ExpenseByCategory)
	return summary
}

// chartData orders categories by total descending, then by name.
func chartData(byCategory map[string]int64) []models.CategoryTotal {
	data := make([]models.CategoryTotal, 0, len(byCategory))
	for name, value := range byCategory {
		data = append(data, models.CategoryTotal{Name: name, Value: value})
	}
	sort.Slice(data, func(i, j int) bool {
		if data[i].Value != data[j].Value {
			return data[i].Value > data[j].Value
		}
		return data[i].Name < data[j].Name
	})
	return data
}
