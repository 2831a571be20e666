package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgErrors "taskboard/pkg/errors"
)

type QueryOption func(*gorm.DB) *gorm.DB

func applyOptions(db *gorm.DB, opts []QueryOption) *gorm.DB {
	for _, opt := range opts {
		db = opt(db)
	}
	return db
}

// isDuplicate 唯一约束冲突. sqlite 驱动未翻译时按错误文本兜底
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

// dbError 包装数据库错误, 唯一约束冲突归类为 conflict, 调用方替换为具体业务提示
func dbError(message string, err error) error {
	if isDuplicate(err) {
		return pkgErrors.Wrap(pkgErrors.KindConflict, "record already exists", err)
	}
	return pkgErrors.Database(message, err)
}

// Store 聚合全部仓储, 共享同一个 gorm 句柄
type Store struct {
	db *gorm.DB

	Users      UserRepository
	Projects   ProjectRepository
	Members    ProjectMemberRepository
	Tasks      TaskRepository
	Labels     LabelRepository
	TaskLabels TaskLabelRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:         db,
		Users:      NewUserRepository(db),
		Projects:   NewProjectRepository(db),
		Members:    NewProjectMemberRepository(db),
		Tasks:      NewTaskRepository(db),
		Labels:     NewLabelRepository(db),
		TaskLabels: NewTaskLabelRepository(db),
	}
}

// Transaction runs fn against a Store bound to one transaction. An error from fn rolls
// everything back and is returned unchanged.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewStore(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		return pkgErrors.Database("commit transaction failed", err)
	}
	return err
}
