package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string, opts ...QueryOption) (*model.Project, error)
	FindDetail(ctx context.Context, id string) (*model.Project, error)
	FindByOwnerAndName(ctx context.Context, ownerID, name string) (*model.Project, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Project, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// WithProjectDetail 项目详情: owner, 成员(按加入时间), 任务(新建在前)及其负责人和标签
func WithProjectDetail() QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("Owner").
			Preload("Members", func(db *gorm.DB) *gorm.DB {
				return db.Order("joined_at ASC")
			}).
			Preload("Members.User").
			Preload("Tasks", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC")
			}).
			Preload("Tasks.Assignee").
			Preload("Tasks.TaskLabels.Label")
	}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return dbError("create project failed", err)
	}
	return nil
}

func (r *projectRepository) FindByID(ctx context.Context, id string, opts ...QueryOption) (*model.Project, error) {
	var project model.Project
	query := applyOptions(r.db.WithContext(ctx), opts)
	if err := query.Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query project failed", err)
	}
	return &project, nil
}

func (r *projectRepository) FindDetail(ctx context.Context, id string) (*model.Project, error) {
	return r.FindByID(ctx, id, WithProjectDetail())
}

func (r *projectRepository) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("owner_id = ? AND name = ?", ownerID, name).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query project failed", err)
	}
	return &project, nil
}

// ListForUser 用户拥有或参与的项目, 最近更新在前
func (r *projectRepository) ListForUser(ctx context.Context, userID string) ([]*model.Project, error) {
	var projects []*model.Project
	memberOf := r.db.Model(&model.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)

	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Or("id IN (?)", memberOf).
		Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("joined_at ASC")
		}).
		Preload("Members.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "project_id", "status")
		}).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, dbError("list projects failed", err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return dbError("update project failed", err)
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{}).Error; err != nil {
		return dbError("delete project failed", err)
	}
	return nil
}
