// Package auth holds the credential primitives: argon2id password hashing
// and HS256 session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when signing or parsing with an empty key.
var ErrEmptySecret = errors.New("empty signing secret")

// Claims is the payload of a session token: the standard claims (sub holds
// the account id) plus the account email.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTSigner signs and parses HS256 session tokens.
type JWTSigner struct {
	now func() time.Time
}

// NewJWTSigner returns a signer driven by the wall clock.
func NewJWTSigner() *JWTSigner {
	return &JWTSigner{now: time.Now}
}

// NewJWTSignerWithClock returns a signer whose notion of "now" comes from
// clock, both when issuing and when checking expiry.
func NewJWTSignerWithClock(clock func() time.Time) *JWTSigner {
	return &JWTSigner{now: clock}
}

// Sign issues a token for subject/email that expires ttl after now.
func (s *JWTSigner) Sign(subject, email string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	return token.SignedString(secret)
}

// Parse validates signature, algorithm and expiry and returns the claims.
// An expired token yields common.ErrTokenExpired; any other problem
// yields an error matching common.ErrInvalidToken.
func (s *JWTSigner) Parse(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
