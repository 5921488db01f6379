// Package models defines the client-side view of the auth API payloads.
package models

// User is the public account as returned by the server. CreatedAt is kept
// as the server's RFC 3339 string.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse is the body of a successful register or login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
