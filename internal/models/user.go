package models

import "time"

// User is a registered account and its ledger. A user owns its transaction
// collection exclusively; Username uniqueness is case-insensitive.
type User struct {
	Username     string        `json:"username"`
	PasswordHash string        `json:"password_hash"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"created_at"`
	ModifiedAt   time.Time     `json:"modified_at,omitempty"`
}
