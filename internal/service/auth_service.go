package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/pkg/crypto"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/metrics"
	"taskboard/internal/pkg/session"
	"taskboard/internal/pkg/validate"
	"taskboard/internal/repository"
	pkgErrors "taskboard/pkg/errors"
)

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// timingHash 未知用户名也做一次 bcrypt 比对, 与密码错误耗时一致
func timingHash() string {
	dummyHashOnce.Do(func() {
		dummyHash, _ = crypto.HashPassword("taskboard-timing-equalizer")
	})
	return dummyHash
}

type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, string, error)
	Logout(ctx context.Context, token string) error
	// GetUserByID 用户不存在时返回 nil, nil
	GetUserByID(ctx context.Context, id string) (*dto.UserInfo, error)
	// ResolveSession 会话 token -> 用户. 会话无效返回 KindUnauthorized, 存储故障返回 KindInternal
	ResolveSession(ctx context.Context, token string) (*dto.UserInfo, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions *session.Manager
}

func NewAuthService(userRepo repository.UserRepository, sessions *session.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, string, error) {
	username := strings.TrimSpace(req.Username)
	if err := validate.Var(username, "trimmed_min=3", "Username must be at least 3 characters long"); err != nil {
		return nil, "", err
	}

	// 用户名已存在时无论密码是否合法都返回冲突
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "conflict").Inc()
		return nil, "", pkgErrors.ErrUsernameTaken
	}

	if err := validate.Var(req.Password, "min=6", "Password must be at least 6 characters long"); err != nil {
		return nil, "", err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, "", pkgErrors.Wrap(pkgErrors.KindInternal, "hash password failed", err)
	}

	user := &model.User{Username: username, Password: hash}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if pkgErrors.Is(err, pkgErrors.KindConflict) {
			return nil, "", pkgErrors.ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", pkgErrors.Wrap(pkgErrors.KindInternal, "create session failed", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	logger.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return dto.NewUserInfo(user), token, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserInfo, string, error) {
	user, err := s.authenticateLocal(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		result := "failure"
		if !pkgErrors.Is(err, pkgErrors.KindAuth) {
			result = "error"
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", result).Inc()
		return nil, "", err
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", pkgErrors.Wrap(pkgErrors.KindInternal, "create session failed", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return dto.NewUserInfo(user), token, nil
}

// authenticateLocal 用户不存在与密码错误返回同一个错误
func (s *authService) authenticateLocal(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if user == nil {
		_ = crypto.CheckPassword(password, timingHash())
		return nil, pkgErrors.ErrInvalidCredentials
	}

	if !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return pkgErrors.Wrap(pkgErrors.KindInternal, "revoke session failed", err)
	}
	return nil
}

func (s *authService) GetUserByID(ctx context.Context, id string) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserInfo(user), nil
}

func (s *authService) ResolveSession(ctx context.Context, token string) (*dto.UserInfo, error) {
	userID, err := s.sessions.Resolve(ctx, token)
	if errors.Is(err, session.ErrRegistryUnavailable) {
		return nil, pkgErrors.Wrap(pkgErrors.KindInternal, "session check failed", err)
	}
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.KindUnauthorized, "invalid session", err)
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgErrors.New(pkgErrors.KindUnauthorized, "session user no longer exists")
	}
	return user, nil
}
