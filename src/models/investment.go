package models

import "time"

// Investment tracks an amount of capital placed in an asset. Amount is the
// initial capital and never changes; CurrentValue is updated by the user.
type Investment struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Amount       int64     `json:"amount"`
	Type         string    `json:"type"` // e.g. "Saham", "Reksadana", "Emas"
	CurrentValue *int64    `json:"current_value"`
	Date         time.Time `json:"date"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Value returns the current value, falling back to the initial amount when
// no value has been recorded.
func (i Investment) Value() int64 {
	if i.CurrentValue != nil {
		return *i.CurrentValue
	}
	return i.Amount
}

type InvestmentInput struct {
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Type   string `json:"type"`
}

// InvestmentWithdrawal describes a full liquidation.
type InvestmentWithdrawal struct {
	InvestmentID int64        `json:"investment_id"`
	Amount       int64        `json:"amount"` // Paid out, equals the value at withdrawal
	Profit       int64        `json:"profit"` // Negative for a loss
	Transaction  *Transaction `json:"transaction,omitempty"` // Nil when nothing was paid out
}
