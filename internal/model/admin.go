package model

import "time"

// Admin is a bulk-editing account. Passwords are verified server-side
// against the stored bcrypt hash, never compared in plaintext.
type Admin struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
