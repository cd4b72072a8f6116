package Models

import "time"

// Expense types. The store keeps the Spanish labels.
const (
	ExpenseFixed    = "fixed"
	ExpenseVariable = "variable"
)

// Expense is a business expense. IDs are globally unique over the whole
// expense table, unlike order ids.
type Expense struct {
	ID      int       `json:"id"`
	Date    time.Time `json:"date"`
	Concept string    `json:"concept"`
	Amount  float64   `json:"amount"`
	Type    string    `json:"type"`

	StoreDocID string `json:"-"`
}
