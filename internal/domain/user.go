package domain

import "time"

// User represents a registered account together with its profile fields.
// PasswordHash never leaves the service layer.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Occupation   string
	Gender       string
	Address      string
	Phone        string
	Avatar       string
	Status       string
	Battery      int
	Remote       bool
	Signal       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
