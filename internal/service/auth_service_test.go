package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/dto"
	"taskboard/internal/pkg/session"
	"taskboard/internal/service"
	"taskboard/internal/testutil"
	pkgErrors "taskboard/pkg/errors"
)

func newAuthService(t *testing.T) service.AuthService {
	store := testutil.NewStore(t)
	return service.NewAuthService(store.Users, testutil.NewSessions())
}

func messageOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *pkgErrors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Message
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{Username: "  alice ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token)

	resolved, err := svc.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	cases := []struct {
		name    string
		req     dto.RegisterRequest
		kind    pkgErrors.Kind
		message string
	}{
		{"short username", dto.RegisterRequest{Username: " ab ", Password: "secret1"}, pkgErrors.KindValidation, "Username must be at least 3 characters long"},
		{"short password", dto.RegisterRequest{Username: "bob", Password: "12345"}, pkgErrors.KindValidation, "Password must be at least 6 characters long"},
		{"taken username", dto.RegisterRequest{Username: "alice", Password: "secret1"}, pkgErrors.KindConflict, "Username already exists"},
		// 用户名已占用时密码规则不影响结果
		{"taken username with invalid password", dto.RegisterRequest{Username: "alice", Password: "1"}, pkgErrors.KindConflict, "Username already exists"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, &tc.req)
			require.Error(t, err)
			assert.Equal(t, tc.kind, pkgErrors.KindOf(err))
			assert.Equal(t, tc.message, messageOf(t, err))
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	registered, _, err := svc.Register(ctx, &dto.RegisterRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotEmpty(t, token)

	_, _, wrongPassword := svc.Login(ctx, &dto.LoginRequest{Username: "alice", Password: "wrong"})
	_, _, unknownUser := svc.Login(ctx, &dto.LoginRequest{Username: "doesNotExist", Password: "whatever"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, pkgErrors.KindAuth, pkgErrors.KindOf(wrongPassword))
	assert.Equal(t, messageOf(t, wrongPassword), messageOf(t, unknownUser))
	assert.Equal(t, "Invalid username or password", messageOf(t, unknownUser))
}

func TestGetUserByIDAndSessions(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	user, err := svc.GetUserByID(ctx, "missing")
	assert.NoError(t, err)
	assert.Nil(t, user)

	_, err = svc.ResolveSession(ctx, "not-a-token")
	assert.Equal(t, pkgErrors.KindUnauthorized, pkgErrors.KindOf(err))

	// 签名有效但用户不存在
	token, err := testutil.NewSessions().Issue(ctx, "ghost")
	require.NoError(t, err)
	_, err = svc.ResolveSession(ctx, token)
	assert.Equal(t, pkgErrors.KindUnauthorized, pkgErrors.KindOf(err))

	assert.NoError(t, svc.Logout(ctx, token))
}

// unreachableRegistry 保存成功, 查询失败
type unreachableRegistry struct{}

func (unreachableRegistry) Save(context.Context, string, string, time.Duration) error { return nil }

func (unreachableRegistry) Exists(context.Context, string) (bool, error) {
	return false, errors.New("dial tcp: connection refused")
}

func (unreachableRegistry) Delete(context.Context, string) error { return nil }

func TestResolveSessionRegistryDown(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewStore(t)
	user := testutil.CreateUser(t, store, "alice")
	sessions := session.NewManager(testutil.SessionSecret, time.Hour, unreachableRegistry{})
	svc := service.NewAuthService(store.Users, sessions)

	token, err := sessions.Issue(ctx, user.ID)
	require.NoError(t, err)

	_, err = svc.ResolveSession(ctx, token)
	require.Error(t, err)
	assert.Equal(t, pkgErrors.KindInternal, pkgErrors.KindOf(err))
}
