package models

import "time"

// Category labels transactions of one type. Transactions store the category
// name by value, so deleting a category leaves existing transactions unchanged.
type Category struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Type      TransactionType `json:"type"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type CategoryInput struct {
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
	Icon string          `json:"icon,omitempty"`
}
