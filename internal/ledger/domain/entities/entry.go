// Package entities defines the domain entities of the ledger service.
package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType tells income from expense.
type EntryType string

const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// EntryStatus is the lifecycle tag of an entry. No transition order is enforced.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusSettled   EntryStatus = "SETTLED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryStatusPending, EntryStatusSettled, EntryStatusCancelled:
		return true
	}
	return false
}

// MinYear is the smallest accepted four-digit year.
const MinYear = 1000

// ValueScale is the number of decimal places an entry value may carry.
const ValueScale = 2

// MaxValue is the exclusive upper bound of an entry value, the limit of NUMERIC(16,2).
var MaxValue = decimal.New(1, 14)

// ValidValue reports whether v is positive, has at most ValueScale decimal
// places and is below MaxValue.
func ValidValue(v decimal.Decimal) bool {
	return v.IsPositive() && v.Equal(v.Round(ValueScale)) && v.LessThan(MaxValue)
}

// Entry is a single ledger line of a user for a given month and year.
// Zero values mean "not set": ID is 0 until the entry is persisted.
type Entry struct {
	ID           int64           `json:"id"`
	Description  string          `json:"description"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Value        decimal.Decimal `json:"value"`
	UserID       int64           `json:"user_id"`
	Type         EntryType       `json:"type"`
	Status       EntryStatus     `json:"status"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// Persisted reports whether the entry already carries a storage identity.
func (e Entry) Persisted() bool {
	return e.ID != 0
}

// WithStatus returns a copy of e carrying status.
func (e Entry) WithStatus(status EntryStatus) Entry {
	e.Status = status
	return e
}
