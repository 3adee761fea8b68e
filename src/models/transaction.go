package models

import "time"

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Origin marks a transaction that was created as the side effect of another
// operation. It is a kind marker only: no id of the originating row is kept.
type Origin string

const (
	OriginManual               Origin = ""
	OriginDebtPayment          Origin = "DEBT_PAYMENT"
	OriginInvestmentPurchase   Origin = "INVESTMENT_PURCHASE"
	OriginInvestmentWithdrawal Origin = "INVESTMENT_WITHDRAWAL"
	OriginGoalContribution     Origin = "GOAL_CONTRIBUTION"
	OriginGoalWithdrawal       Origin = "GOAL_WITHDRAWAL"
)

// Transaction represents a single income or expense entry.
type Transaction struct {
	ID          int64           `json:"id"`
	Amount      int64           `json:"amount"` // Positive, in the base currency unit
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"` // Free text, decoupled from the categories table
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	Origin      Origin          `json:"origin,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// IsCompanion reports whether the transaction was generated by a debt,
// investment or goal operation.
func (t Transaction) IsCompanion() bool {
	return t.Origin != OriginManual
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Amount      int64           `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
}
