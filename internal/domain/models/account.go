package models

import "time"

// Account represents a demo user of the workbench.
//
// There is no authentication backend; accounts live in the in-memory
// store, seeded at startup and extended by the registration page.
// Passwords are still bcrypt-hashed so the login flow exercises the
// same comparison a real deployment would.
type Account struct {
	ID           string // uuid
	Email        string // lowercase
	FullName     string
	PasswordHash []byte // bcrypt
	CreatedAt    time.Time
}
