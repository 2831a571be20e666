package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type ProjectMemberRepository interface {
	Create(ctx context.Context, member *model.ProjectMember) error
	FindByID(ctx context.Context, id string) (*model.ProjectMember, error)
	FindByProjectAndUser(ctx context.Context, projectID, userID string) (*model.ProjectMember, error)
	ListByProject(ctx context.Context, projectID string) ([]*model.ProjectMember, error)
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type projectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) Create(ctx context.Context, member *model.ProjectMember) error {
	if err := r.db.WithContext(ctx).Create(member).Error; err != nil {
		return dbError("add project member failed", err)
	}
	return nil
}

func (r *projectMemberRepository) FindByID(ctx context.Context, id string) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query project member failed", err)
	}
	return &member, nil
}

func (r *projectMemberRepository) FindByProjectAndUser(ctx context.Context, projectID, userID string) (*model.ProjectMember, error) {
	var member model.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query project member failed", err)
	}
	return &member, nil
}

func (r *projectMemberRepository) ListByProject(ctx context.Context, projectID string) ([]*model.ProjectMember, error) {
	var members []*model.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, dbError("list project members failed", err)
	}
	return members, nil
}

func (r *projectMemberRepository) UpdateRole(ctx context.Context, id, role string) error {
	err := r.db.WithContext(ctx).Model(&model.ProjectMember{}).Where("id = ?", id).Update("role", role).Error
	if err != nil {
		return dbError("update member role failed", err)
	}
	return nil
}

func (r *projectMemberRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ProjectMember{}).Error; err != nil {
		return dbError("remove project member failed", err)
	}
	return nil
}

func (r *projectMemberRepository) DeleteByProject(ctx context.Context, projectID string) error {
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.ProjectMember{}).Error
	if err != nil {
		return dbError("remove project members failed", err)
	}
	return nil
}
