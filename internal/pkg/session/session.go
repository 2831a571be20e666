// Package session issues and resolves the signed token carried in the session cookie.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/pkg/jwt"
)

// ErrRevoked is returned by Resolve for a token removed from the registry.
var ErrRevoked = errors.New("session revoked")

// ErrRegistryUnavailable 注册表查询失败, token 本身可能仍然有效
var ErrRegistryUnavailable = errors.New("session registry unavailable")

// Registry 记录仍然有效的会话, 用于登出后立即失效
type Registry interface {
	Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// Manager 会话管理. registry 为 nil 时只依赖签名与过期时间
type Manager struct {
	signer   *jwt.Signer
	registry Registry
	ttl      time.Duration
}

func NewManager(secret string, ttl time.Duration, registry Registry) *Manager {
	return &Manager{
		signer:   jwt.NewSigner(secret, ttl),
		registry: registry,
		ttl:      ttl,
	}
}

// TTL 会话有效期, 与 cookie Max-Age 一致
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue 为用户签发新会话
func (m *Manager) Issue(ctx context.Context, userID string) (string, error) {
	token, claims, err := m.signer.Generate(userID)
	if err != nil {
		return "", err
	}
	if m.registry != nil {
		if err := m.registry.Save(ctx, claims.ID, userID, m.ttl); err != nil {
			return "", fmt.Errorf("register session: %w", err)
		}
	}
	return token, nil
}

// Resolve 返回 token 对应的用户 ID
func (m *Manager) Resolve(ctx context.Context, token string) (string, error) {
	claims, err := m.signer.Parse(token)
	if err != nil {
		return "", err
	}
	if m.registry != nil {
		ok, err := m.registry.Exists(ctx, claims.ID)
		if err != nil {
			return "", fmt.Errorf("check session: %w: %w", ErrRegistryUnavailable, err)
		}
		if !ok {
			return "", ErrRevoked
		}
	}
	return claims.Subject, nil
}

// Revoke 使 token 失效. 无法解析的 token 视为已失效
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if m.registry == nil || token == "" {
		return nil
	}
	claims, err := m.signer.Parse(token)
	if err != nil {
		return nil
	}
	return m.registry.Delete(ctx, claims.ID)
}
