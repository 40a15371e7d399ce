package auth

import (
	"time"

	"github.com/and161185/gas2door/internal/errs"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VisitorTTL is how long a browser keeps its visitor identity without coming back.
const VisitorTTL = 30 * 24 * time.Hour

type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
}

func NewTokenManager(secretKey string) *TokenManager {
	return &TokenManager{secretKey: []byte(secretKey), ttl: VisitorTTL}
}

// NewVisitor issues a token for a browser seen for the first time.
func (tm *TokenManager) NewVisitor() (visitorID, token string, err error) {
	visitorID = uuid.NewString()
	token, err = tm.GenerateToken(visitorID)
	if err != nil {
		return "", "", err
	}
	return visitorID, token, nil
}

func (tm *TokenManager) GenerateToken(visitorID string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   visitorID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

func (tm *TokenManager) ParseToken(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errs.ErrInvalidToken
		}
		return tm.secretKey, nil
	})

	if err != nil || !token.Valid {
		return "", errs.ErrInvalidToken
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errs.ErrInvalidToken
	}

	return claims.Subject, nil
}
