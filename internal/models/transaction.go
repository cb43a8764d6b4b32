package models

import "time"

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// IsValid reports whether the kind is one of the known values.
func (k TransactionKind) IsValid() bool {
	return k == KindIncome || k == KindExpense
}

// dateLayouts are the accepted calendar date formats, tried in order.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate parses an ISO 8601 date string (date-only or full timestamp).
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Transaction is a single ledger entry. Amount is always non-negative; the
// sign is implied by Kind. ID is unique within the owning user's ledger and
// immutable after creation.
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Date        string          `json:"date"` // ISO 8601
	Category    string          `json:"category"`
}

// DateValue returns the parsed date, or the zero time if unparseable.
// Stored dates are validated on entry, so the zero case only appears for
// records written by older builds.
func (t *Transaction) DateValue() time.Time {
	parsed, err := ParseDate(t.Date)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
