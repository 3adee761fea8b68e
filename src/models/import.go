package models

import "time"

// ImportRow is a candidate transaction read from an uploaded CSV file.
type ImportRow struct {
	Line        int             `json:"line"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToInput converts the row into a transaction input.
func (r ImportRow) ToInput() TransactionInput {
	return TransactionInput{
		Amount:      r.Amount,
		Type:        r.Type,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}
}

// ImportResult holds the rows that passed validation and one message per
// rejected row. Success is true only when no row was rejected.
type ImportResult struct {
	Success  bool        `json:"success"`
	Data     []ImportRow `json:"data"`
	Errors   []string    `json:"errors"`
	Inserted int         `json:"inserted"`
}
