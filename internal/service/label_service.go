package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/validate"
	"taskboard/internal/repository"
	pkgErrors "taskboard/pkg/errors"
)

var labelMessages = validate.Messages{
	"name.trimmed_min": "Label name must be at least 2 characters long",
}

// LabelService 标签全局共享, 任何登录用户都可以维护
type LabelService interface {
	Create(ctx context.Context, req *dto.LabelCreateRequest) (*dto.LabelResponse, error)
	List(ctx context.Context) ([]*dto.LabelResponse, error)
	Get(ctx context.Context, id string) (*dto.LabelResponse, error)
	Update(ctx context.Context, id string, req *dto.LabelUpdateRequest) (*dto.LabelResponse, error)
	// Delete 同时解除该标签与所有任务的关联
	Delete(ctx context.Context, id string) error
}

type labelService struct {
	store *repository.Store
}

func NewLabelService(store *repository.Store) LabelService {
	return &labelService{store: store}
}

func (s *labelService) Create(ctx context.Context, req *dto.LabelCreateRequest) (*dto.LabelResponse, error) {
	if err := validate.Struct(req, labelMessages); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.store.Labels.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pkgErrors.ErrLabelExists
	}

	label := &model.Label{
		Name:  name,
		Color: strings.ToUpper(req.Color),
	}
	if err := s.store.Labels.Create(ctx, label); err != nil {
		if pkgErrors.Is(err, pkgErrors.KindConflict) {
			return nil, pkgErrors.ErrLabelExists
		}
		return nil, err
	}

	logger.Info("label created", zap.String("label_id", label.ID), zap.String("name", label.Name))
	return toLabelResponse(label), nil
}

func (s *labelService) List(ctx context.Context) ([]*dto.LabelResponse, error) {
	labels, err := s.store.Labels.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(labels, func(l *model.Label, _ int) *dto.LabelResponse {
		return toLabelResponse(l)
	}), nil
}

func (s *labelService) Get(ctx context.Context, id string) (*dto.LabelResponse, error) {
	label, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLabelResponse(label), nil
}

func (s *labelService) Update(ctx context.Context, id string, req *dto.LabelUpdateRequest) (*dto.LabelResponse, error) {
	label, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req, labelMessages); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		name := strings.TrimSpace(*req.Name)
		// 重名检查排除自身
		other, err := s.store.Labels.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != label.ID {
			return nil, pkgErrors.ErrLabelExists
		}
		fields["name"] = name
	}
	if req.Color != nil && *req.Color != "" {
		fields["color"] = strings.ToUpper(*req.Color)
	}

	if err := s.store.Labels.Update(ctx, label.ID, fields); err != nil {
		if pkgErrors.Is(err, pkgErrors.KindConflict) {
			return nil, pkgErrors.ErrLabelExists
		}
		return nil, err
	}
	// 重新读取以带回 updated_at
	if label, err = s.find(ctx, label.ID); err != nil {
		return nil, err
	}
	return toLabelResponse(label), nil
}

func (s *labelService) Delete(ctx context.Context, id string) error {
	label, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.TaskLabels.DeleteByLabel(ctx, label.ID); err != nil {
			return err
		}
		return tx.Labels.Delete(ctx, label.ID)
	})
	if err != nil {
		return err
	}

	logger.Info("label deleted", zap.String("label_id", label.ID), zap.String("name", label.Name))
	return nil
}

func (s *labelService) find(ctx context.Context, id string) (*model.Label, error) {
	label, err := s.store.Labels.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, pkgErrors.ErrLabelNotFound
	}
	return label, nil
}
