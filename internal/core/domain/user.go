package domain

import "time"

// User models an authenticated actor. Username is the stable identity
// referenced by Task.Owner and by the token subject claim.
type User struct {
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
