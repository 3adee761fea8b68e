package models

// CategoryTotal is one slice of a per-category chart.
type CategoryTotal struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Summary is the dashboard aggregate over transactions, debts and investments.
type Summary struct {
	Balance           int64            `json:"balance"`
	Income            int64            `json:"income"`
	Expense           int64            `json:"expense"`
	Payable           int64            `json:"payable"`
	Receivable        int64            `json:"receivable"`
	TotalInvestment   int64            `json:"total_investment"`
	IncomeByCategory  map[string]int64 `json:"income_by_category"`
	ExpenseByCategory map[string]int64 `json:"expense_by_category"`
	IncomeChartData   []CategoryTotal  `json:"income_chart_data"`
	ExpenseChartData  []CategoryTotal  `json:"expense_chart_data"`
}
