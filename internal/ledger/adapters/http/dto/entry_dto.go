package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"finledger/internal/ledger/domain/entities"
)

// EntryRequest is the body of entry creation and full update.
// Business rules are checked by the entry service; tags only reject unknown enum values.
type EntryRequest struct {
	Description string          `json:"description" validate:"max=255"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Value       decimal.Decimal `json:"value"`
	Type        string          `json:"type" validate:"omitempty,oneof=INCOME EXPENSE"`
	Status      string          `json:"status" validate:"omitempty,oneof=PENDING SETTLED CANCELLED"`
}

// StatusRequest is the body of a status change.
type StatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SETTLED CANCELLED"`
}

// EntryResponse renders an entry.
type EntryResponse struct {
	ID           int64  `json:"id"`
	Description  string `json:"description"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	Value        string `json:"value"`
	UserID       int64  `json:"user_id"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registered_at"`
}

// ToEntry converts the request to a domain entry owned by userID.
func (r EntryRequest) ToEntry(userID int64) entities.Entry {
	return entities.Entry{
		Description: r.Description,
		Month:       r.Month,
		Year:        r.Year,
		Value:       r.Value,
		UserID:      userID,
		Type:        entities.EntryType(r.Type),
		Status:      entities.EntryStatus(r.Status),
	}
}

// NewEntryResponse renders entry. Value keeps two decimal places.
func NewEntryResponse(entry entities.Entry) EntryResponse {
	return EntryResponse{
		ID:           entry.ID,
		Description:  entry.Description,
		Month:        entry.Month,
		Year:         entry.Year,
		Value:        entry.Value.StringFixed(2),
		UserID:       entry.UserID,
		Type:         string(entry.Type),
		Status:       string(entry.Status),
		RegisteredAt: entry.RegisteredAt.Format(time.DateOnly),
	}
}

// NewEntryListResponse renders entries, never as null.
func NewEntryListResponse(entries []entities.Entry) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewEntryResponse(e))
	}
	return out
}
