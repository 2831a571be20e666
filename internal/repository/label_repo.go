package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type LabelRepository interface {
	Create(ctx context.Context, label *model.Label) error
	FindByID(ctx context.Context, id string) (*model.Label, error)
	FindByName(ctx context.Context, name string) (*model.Label, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Label, error)
	List(ctx context.Context) ([]*model.Label, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
}

type labelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Create(ctx context.Context, label *model.Label) error {
	if err := r.db.WithContext(ctx).Create(label).Error; err != nil {
		return dbError("create label failed", err)
	}
	return nil
}

func (r *labelRepository) FindByID(ctx context.Context, id string) (*model.Label, error) {
	var label model.Label
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query label failed", err)
	}
	return &label, nil
}

// FindByName 精确匹配, 区分大小写
func (r *labelRepository) FindByName(ctx context.Context, name string) (*model.Label, error) {
	var label model.Label
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&label).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query label failed", err)
	}
	return &label, nil
}

func (r *labelRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Label, error) {
	var labels []*model.Label
	if len(ids) == 0 {
		return labels, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&labels).Error; err != nil {
		return nil, dbError("query labels failed", err)
	}
	return labels, nil
}

func (r *labelRepository) List(ctx context.Context) ([]*model.Label, error) {
	var labels []*model.Label
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&labels).Error; err != nil {
		return nil, dbError("list labels failed", err)
	}
	return labels, nil
}

func (r *labelRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Label{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return dbError("update label failed", err)
	}
	return nil
}

func (r *labelRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Label{}).Error; err != nil {
		return dbError("delete label failed", err)
	}
	return nil
}
