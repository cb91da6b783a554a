package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

const defaultAccessTokenTTL = 15 * time.Minute

type JWTManager struct {
	Secret         []byte
	Issuer         string
	AccessTokenTTL time.Duration
}

// AccessClaims is the identity handed to every authorization check: who the
// caller is and which role they hold. The role rides in the token so route
// gating does not need a user lookup.
type AccessClaims struct {
	UserID string `json:"sub"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (m JWTManager) IssueAccessToken(userID string, role string) (string, time.Duration, error) {
	ttl := m.AccessTokenTTL
	if ttl == 0 {
		ttl = defaultAccessTokenTTL
	}
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

func (m JWTManager) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(*jwt.Token) (any, error) { return m.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
