package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenInvalid is returned when a token fails signature or claim
	// validation for any reason other than expiry.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned when a token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the subject identity inside issued tokens. Only registered
// claims are used; the subject is the user's UUID.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-bound identity tokens.
// Tokens are HS256 JWTs; they are stateless and never persisted.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue produces a signed token embedding subjectID with an expiry of
// now + the configured validity window.
func (s *TokenService) Issue(subjectID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's signature and expiry and returns the embedded
// subject identifier. Expired tokens return ErrTokenExpired; every other
// failure returns ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		return uuid.Nil, ErrTokenInvalid
	}
	if !token.Valid {
		return uuid.Nil, ErrTokenInvalid
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return subjectID, nil
}
