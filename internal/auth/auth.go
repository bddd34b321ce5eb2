package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthInfo is the internal domain model returned by the credential flows.
type AuthInfo struct {
	UserID    string
	Email     string
	Token     string
	ExpiresAt time.Time
}

// User is the authenticated principal placed in the request context by the
// middleware.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func (u *User) GetID() string { return u.ID }

// TokenService creates and validates tokens.
type TokenService interface {
	GenerateAccessToken(userID, email string) (token string, expiresAt time.Time, err error)
	GenerateInviteToken(email string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type JWTTokenService struct {
	Secret         []byte
	AccessTokenTTL time.Duration
	InviteTokenTTL time.Duration
}
