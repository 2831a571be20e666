// Package testutil provides an in-memory database and small fixture builders for tests.
package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/internal/pkg/config"
	"taskboard/internal/pkg/crypto"
	"taskboard/internal/pkg/database"
	"taskboard/internal/pkg/session"
	"taskboard/internal/repository"
)

// Password 测试用户的统一密码
const Password = "password123"

const SessionSecret = "test-session-secret"

var (
	hashOnce sync.Once
	hash     string
)

func passwordHash(t testing.TB) string {
	hashOnce.Do(func() {
		var err error
		hash, err = crypto.HashPassword(Password)
		require.NoError(t, err)
	})
	return hash
}

// NewDB 每次调用得到一个独立的内存库, 测试结束时关闭
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(&config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     ":memory:",
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func NewStore(t testing.TB) *repository.Store {
	return repository.NewStore(NewDB(t))
}

func NewSessions() *session.Manager {
	return session.NewManager(SessionSecret, time.Hour, nil)
}

func CreateUser(t testing.TB, store *repository.Store, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, Password: passwordHash(t)}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func CreateProject(t testing.TB, store *repository.Store, owner *model.User, name string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name, OwnerID: owner.ID}
	require.NoError(t, store.Projects.Create(context.Background(), project))
	return project
}

func AddMember(t testing.TB, store *repository.Store, project *model.Project, user *model.User, role string) *model.ProjectMember {
	t.Helper()
	member := &model.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: role}
	require.NoError(t, store.Members.Create(context.Background(), member))
	return member
}

func CreateLabel(t testing.TB, store *repository.Store, name, color string) *model.Label {
	t.Helper()
	label := &model.Label{Name: name, Color: color}
	require.NoError(t, store.Labels.Create(context.Background(), label))
	return label
}

func CreateTask(t testing.TB, store *repository.Store, project *model.Project, title string, mutate ...func(*model.Task)) *model.Task {
	t.Helper()
	task := &model.Task{ProjectID: project.ID, Title: title, Status: "Todo", Priority: "Medium"}
	for _, fn := range mutate {
		fn(task)
	}
	require.NoError(t, store.Tasks.Create(context.Background(), task))
	return task
}
