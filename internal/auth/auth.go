// Package auth guards the operator-facing API: one configured admin account,
// bcrypt password verification and JWT sessions.
package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	username string
	password string
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthenticator(username, password, secret string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		username: username,
		password: password,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Login verifies the operator credentials and returns a signed session token.
// The configured password may be either a bcrypt hash or a plain value; plain
// values are compared in constant time.
func (a *Authenticator) Login(username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) != 1 {
		return "", fmt.Errorf("invalid credentials")
	}
	if !a.passwordMatches(password) {
		return "", fmt.Errorf("invalid credentials")
	}
	return a.generateToken(username)
}

func (a *Authenticator) passwordMatches(password string) bool {
	if strings.HasPrefix(a.password, "$2a$") || strings.HasPrefix(a.password, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
}

func (a *Authenticator) generateToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Verify parses and validates a session token, returning its claims.
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
