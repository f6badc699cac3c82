package models

import "time"

// User is a stored credential. PasswordHash is a bcrypt string and is never
// serialised back to clients.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}
