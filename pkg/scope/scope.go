package scope

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySecret  = errors.New("jwt secret is empty")
)

// Payload is the authenticated identity carried in a session token.
type Payload struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens.
type Manager interface {
	CreateToken(userID int64, username string) (string, time.Time, error)
	Verify(token string) (Payload, error)
}

type implManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// New returns an HS256 Manager.
func New(secret string, ttl time.Duration, issuer string) (Manager, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &implManager{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

func (m *implManager) CreateToken(userID int64, username string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	jti, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("scope.CreateToken: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Payload{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Issuer:    m.issuer,
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("scope.CreateToken: %w", err)
	}
	return signed, expiresAt, nil
}

func (m *implManager) Verify(tokenString string) (Payload, error) {
	var payload Payload
	token, err := jwt.ParseWithClaims(tokenString, &payload, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return Payload{}, ErrInvalidToken
	}
	if payload.UserID <= 0 {
		return Payload{}, ErrInvalidToken
	}
	return payload, nil
}

type ctxKey struct{}

// SetPayloadToContext stores the authenticated payload in ctx.
func SetPayloadToContext(ctx context.Context, p Payload) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// GetPayloadFromContext returns the payload stored by SetPayloadToContext.
func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	p, ok := ctx.Value(ctxKey{}).(Payload)
	return p, ok
}
