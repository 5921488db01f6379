package models

import "time"

// User is a registered account. PasswordHash holds the bcrypt digest and
// must never be serialized into responses or logs.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
