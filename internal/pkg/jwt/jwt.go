package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "taskboard"

// SessionClaims 会话 Claims, Subject 为用户 ID, ID 为会话 ID
type SessionClaims struct {
	jwt.RegisteredClaims
}

// Signer 签发与校验 HS256 会话 token
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock 返回使用指定时钟的副本
func (s *Signer) WithClock(now func() time.Time) *Signer {
	clone := *s
	clone.now = now
	return &clone
}

// Generate 生成 token, 返回 token 及其 claims
func (s *Signer) Generate(userID string) (string, *SessionClaims, error) {
	now := s.now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return signed, claims, nil
}

// Parse 校验签名、过期时间与签发方
func (s *Signer) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("parse session token: invalid claims")
	}
	return claims, nil
}
