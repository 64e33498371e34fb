package account

import (
	"time"
)

const (
	sessionCookieName = "lulab_session"
	sessionMaxAge     = 7 * 24 * time.Hour
)

// Account is a site user as stored. The store is keyed by lowercased email.
type Account struct {
	UID          string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type logoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
