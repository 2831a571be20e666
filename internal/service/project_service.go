package service

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/pkg/auth"
	"taskboard/internal/pkg/logger"
	"taskboard/internal/pkg/validate"
	"taskboard/internal/repository"
	"taskboard/pkg/constants"
	pkgErrors "taskboard/pkg/errors"
)

var projectMessages = validate.Messages{
	"name.trimmed_min": "Project name must be at least 3 characters long",
}

type ProjectService interface {
	Create(ctx context.Context, ownerID string, req *dto.ProjectCreateRequest) (*dto.ProjectResponse, error)
	Get(ctx context.Context, projectID, userID string) (*dto.ProjectResponse, error)
	// ListForUser 拥有或参与的项目, 附带任务统计
	ListForUser(ctx context.Context, userID string) ([]*dto.ProjectResponse, error)
	Update(ctx context.Context, projectID, userID string, req *dto.ProjectUpdateRequest) (*dto.ProjectResponse, error)
	Delete(ctx context.Context, projectID, userID string) error
	Stats(ctx context.Context, projectID, userID string) (*dto.ProjectStats, error)
}

type projectService struct {
	store *repository.Store
	authz AuthorizationService
}

func NewProjectService(store *repository.Store, authz AuthorizationService) ProjectService {
	return &projectService{
		store: store,
		authz: authz,
	}
}

func (s *projectService) Create(ctx context.Context, ownerID string, req *dto.ProjectCreateRequest) (*dto.ProjectResponse, error) {
	if err := validate.Struct(req, projectMessages); err != nil {
		return nil, err
	}
	startDate, err := parseDatePtr(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDatePtr(req.EndDate)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: trimmedOrNil(req.Description),
		StartDate:   startDate,
		EndDate:     endDate,
		OwnerID:     ownerID,
	}
	if err := s.store.Projects.Create(ctx, project); err != nil {
		return nil, err
	}

	logger.Info("project created", zap.String("project_id", project.ID), zap.String("owner_id", ownerID))
	return s.detail(ctx, project.ID)
}

func (s *projectService) Get(ctx context.Context, projectID, userID string) (*dto.ProjectResponse, error) {
	if _, err := s.authz.CheckProjectAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}
	return s.detail(ctx, projectID)
}

func (s *projectService) ListForUser(ctx context.Context, userID string) ([]*dto.ProjectResponse, error) {
	projects, err := s.store.Projects.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return lo.Map(projects, func(p *model.Project, _ int) *dto.ProjectResponse {
		resp := toProjectResponse(p)
		resp.Stats = statsOf(lo.Map(p.Tasks, func(t model.Task, _ int) string { return t.Status }))
		return resp
	}), nil
}

func (s *projectService) Update(ctx context.Context, projectID, userID string, req *dto.ProjectUpdateRequest) (*dto.ProjectResponse, error) {
	if _, err := s.authz.Authorize(ctx, projectID, userID, auth.PermProjectUpdate); err != nil {
		return nil, err
	}
	if err := validate.Struct(req, projectMessages); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Name != nil && *req.Name != "" {
		fields["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description.Set {
		fields["description"] = trimmedOrNil(req.Description.Value)
	}
	if req.StartDate.Set {
		startDate, err := parseDatePtr(req.StartDate.Value)
		if err != nil {
			return nil, err
		}
		fields["start_date"] = startDate
	}
	if req.EndDate.Set {
		endDate, err := parseDatePtr(req.EndDate.Value)
		if err != nil {
			return nil, err
		}
		fields["end_date"] = endDate
	}

	if err := s.store.Projects.Update(ctx, projectID, fields); err != nil {
		return nil, err
	}
	return s.detail(ctx, projectID)
}

// Delete 删除项目及其任务、标签关联和成员
func (s *projectService) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.authz.Authorize(ctx, projectID, userID, auth.PermProjectDelete); err != nil {
		return err
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.TaskLabels.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := tx.Tasks.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		if err := tx.Members.DeleteByProject(ctx, projectID); err != nil {
			return err
		}
		return tx.Projects.Delete(ctx, projectID)
	})
	if err != nil {
		return err
	}

	logger.Info("project deleted", zap.String("project_id", projectID), zap.String("user_id", userID))
	return nil
}

func (s *projectService) Stats(ctx context.Context, projectID, userID string) (*dto.ProjectStats, error) {
	if _, err := s.authz.CheckProjectAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}
	counts, err := s.store.Tasks.CountByStatus(ctx, projectID)
	if err != nil {
		return nil, err
	}

	stats := &dto.ProjectStats{}
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case constants.TaskStatusTodo:
			stats.Todo = c.Count
		case constants.TaskStatusInProgress:
			stats.InProgress = c.Count
		case constants.TaskStatusDone:
			stats.Done = c.Count
		}
	}
	return stats, nil
}

func (s *projectService) detail(ctx context.Context, projectID string) (*dto.ProjectResponse, error) {
	project, err := s.store.Projects.FindDetail(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, pkgErrors.ErrProjectNotFound
	}
	resp := toProjectResponse(project)
	resp.Tasks = lo.Map(project.Tasks, func(t model.Task, _ int) *dto.TaskResponse {
		return toTaskResponse(&t)
	})
	resp.Stats = statsOf(lo.Map(project.Tasks, func(t model.Task, _ int) string { return t.Status }))
	return resp, nil
}
