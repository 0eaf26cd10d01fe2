package security

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const EmailClaim = "email"

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenAuth signs and verifies HS256 bearer tokens carrying an email subject.
type TokenAuth struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
}

func NewTokenAuth(secret string, ttl time.Duration) *TokenAuth {
	return &TokenAuth{
		ja:  jwtauth.New("HS256", []byte(secret), nil),
		ttl: ttl,
	}
}

// JWTAuth exposes the underlying verifier for jwtauth.Verifier.
func (t *TokenAuth) JWTAuth() *jwtauth.JWTAuth {
	return t.ja
}

// Sign issues a token for email that expires after the configured TTL.
func (t *TokenAuth) Sign(email string) (string, error) {
	return t.SignWithTTL(email, t.ttl)
}

func (t *TokenAuth) SignWithTTL(email string, ttl time.Duration) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("email claim is required")
	}
	claims := jwt.MapClaims{EmailClaim: email}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, ttl)

	_, tokenString, err := t.ja.Encode(claims)
	return tokenString, err
}

// Verify decodes tokenString and returns its email subject.
func (t *TokenAuth) Verify(tokenString string) (string, error) {
	token, err := jwtauth.VerifyToken(t.ja, tokenString)
	if err != nil || token == nil {
		return "", ErrInvalidToken
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", ErrInvalidToken
	}
	return GetEmailFromClaims(claims)
}

// GetEmailFromClaims extracts the email subject from decoded claims.
func GetEmailFromClaims(claims jwt.MapClaims) (string, error) {
	email, ok := claims[EmailClaim].(string)
	if !ok || email == "" {
		return "", errors.New("email claim is missing or not a string")
	}
	return email, nil
}
