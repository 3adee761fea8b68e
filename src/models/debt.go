package models

import "time"

// DebtType distinguishes money owed by the user from money owed to the user.
type DebtType string

const (
	DebtPayable    DebtType = "PAYABLE"
	DebtReceivable DebtType = "RECEIVABLE"
)

func (t DebtType) Valid() bool {
	return t == DebtPayable || t == DebtReceivable
}

// Debt is a payable or receivable. Amount is the remaining balance; once it
// reaches zero the debt is paid. ClearedAmount holds the balance that was
// zeroed by marking the debt paid by hand, so reopening it can restore it.
type Debt struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"` // Counterparty
	Amount        int64      `json:"amount"`
	Type          DebtType   `json:"type"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	IsPaid        bool       `json:"is_paid"`
	ClearedAmount int64      `json:"cleared_amount"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type DebtInput struct {
	Name    string     `json:"name"`
	Amount  int64      `json:"amount"`
	Type    DebtType   `json:"type"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// DebtPayment is the outcome of a payment: the debt after the update and the
// companion transaction that was recorded with it.
type DebtPayment struct {
	Debt        Debt        `json:"debt"`
	Transaction Transaction `json:"transaction"`
}
