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
	"taskboard/pkg/constants"
	pkgErrors "taskboard/pkg/errors"
)

var taskMessages = validate.Messages{
	"title.trimmed_min": "Task title must be at least 3 characters long",
	"status.oneof":      "Invalid status",
	"priority.oneof":    "Invalid priority",
}

// TaskService 任务的所有操作都要求调用者能访问任务所在项目
type TaskService interface {
	Create(ctx context.Context, userID string, req *dto.TaskCreateRequest) (*dto.TaskResponse, error)
	Get(ctx context.Context, taskID, userID string) (*dto.TaskResponse, error)
	ListByProject(ctx context.Context, projectID, userID string, filter repository.TaskFilter) ([]*dto.TaskResponse, error)
	// Board 按状态分组, 三列总是存在
	Board(ctx context.Context, projectID, userID string) (*dto.TaskBoard, error)
	// ListByAssignee 当前用户被指派的任务, 不做项目访问检查
	ListByAssignee(ctx context.Context, userID string) ([]*dto.TaskResponse, error)
	Update(ctx context.Context, taskID, userID string, req *dto.TaskUpdateRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, taskID, userID string) error
	AddLabel(ctx context.Context, taskID, userID string, req *dto.TaskLabelRequest) (*dto.TaskResponse, error)
	RemoveLabel(ctx context.Context, taskID, labelID, userID string) (*dto.TaskResponse, error)
}

type taskService struct {
	store *repository.Store
	authz AuthorizationService
}

func NewTaskService(store *repository.Store, authz AuthorizationService) TaskService {
	return &taskService{
		store: store,
		authz: authz,
	}
}

func (s *taskService) Create(ctx context.Context, userID string, req *dto.TaskCreateRequest) (*dto.TaskResponse, error) {
	if err := validate.Var(req.ProjectID, "required", "Project ID is required"); err != nil {
		return nil, err
	}
	if _, err := s.authz.CheckProjectAccess(ctx, req.ProjectID, userID); err != nil {
		return nil, err
	}
	if err := validate.Struct(req, taskMessages); err != nil {
		return nil, err
	}

	dueDate, err := parseDatePtr(req.DueDate)
	if err != nil {
		return nil, err
	}
	assigneeID, err := s.resolveAssignee(ctx, req.AssigneeID)
	if err != nil {
		return nil, err
	}
	labelIDs, err := s.resolveLabels(ctx, req.LabelIDs)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: trimmedOrNil(req.Description),
		Status:      lo.Ternary(req.Status == "", constants.TaskStatusTodo, req.Status),
		Priority:    lo.Ternary(req.Priority == "", constants.TaskPriorityMedium, req.Priority),
		AssigneeID:  assigneeID,
		DueDate:     dueDate,
	}

	// 任务与标签关联在同一事务内写入
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}
		return tx.TaskLabels.Attach(ctx, task.ID, labelIDs...)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.String("project_id", task.ProjectID),
		zap.String("user_id", userID),
		zap.Int("labels", len(labelIDs)))
	return s.load(ctx, task.ID)
}

func (s *taskService) Get(ctx context.Context, taskID, userID string) (*dto.TaskResponse, error) {
	task, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID, userID string, filter repository.TaskFilter) ([]*dto.TaskResponse, error) {
	if _, err := s.authz.CheckProjectAccess(ctx, projectID, userID); err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks.ListByProject(ctx, projectID, filter)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *taskService) Board(ctx context.Context, projectID, userID string) (*dto.TaskBoard, error) {
	tasks, err := s.ListByProject(ctx, projectID, userID, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	byStatus := func(status string) []*dto.TaskResponse {
		return lo.Filter(tasks, func(t *dto.TaskResponse, _ int) bool { return t.Status == status })
	}
	return &dto.TaskBoard{
		Todo:       byStatus(constants.TaskStatusTodo),
		InProgress: byStatus(constants.TaskStatusInProgress),
		Done:       byStatus(constants.TaskStatusDone),
	}, nil
}

func (s *taskService) ListByAssignee(ctx context.Context, userID string) ([]*dto.TaskResponse, error) {
	tasks, err := s.store.Tasks.ListByAssignee(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *taskService) Update(ctx context.Context, taskID, userID string, req *dto.TaskUpdateRequest) (*dto.TaskResponse, error) {
	task, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := validate.Struct(req, taskMessages); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Title != nil && *req.Title != "" {
		fields["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description.Set {
		fields["description"] = trimmedOrNil(req.Description.Value)
	}
	if req.Status != nil && *req.Status != "" {
		fields["status"] = *req.Status
	}
	if req.Priority != nil && *req.Priority != "" {
		fields["priority"] = *req.Priority
	}
	if req.AssigneeID.Set {
		assigneeID, err := s.resolveAssignee(ctx, req.AssigneeID.Value)
		if err != nil {
			return nil, err
		}
		fields["assignee_id"] = assigneeID
	}
	if req.DueDate.Set {
		dueDate, err := parseDatePtr(req.DueDate.Value)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = dueDate
	}

	var labelIDs []string
	if req.LabelIDs != nil {
		if labelIDs, err = s.resolveLabels(ctx, *req.LabelIDs); err != nil {
			return nil, err
		}
	}

	// label_ids 出现时整体替换, 与字段更新同一事务
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Tasks.Update(ctx, task.ID, fields); err != nil {
			return err
		}
		if req.LabelIDs == nil {
			return nil
		}
		if err := tx.TaskLabels.DeleteByTask(ctx, task.ID); err != nil {
			return err
		}
		return tx.TaskLabels.Attach(ctx, task.ID, labelIDs...)
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, task.ID)
}

func (s *taskService) Delete(ctx context.Context, taskID, userID string) error {
	task, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return err
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.TaskLabels.DeleteByTask(ctx, task.ID); err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, task.ID)
	})
	if err != nil {
		return err
	}

	logger.Info("task deleted", zap.String("task_id", task.ID), zap.String("user_id", userID))
	return nil
}

func (s *taskService) AddLabel(ctx context.Context, taskID, userID string, req *dto.TaskLabelRequest) (*dto.TaskResponse, error) {
	task, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if err := validate.Var(req.LabelID, "required", "Label ID is required"); err != nil {
		return nil, err
	}

	label, err := s.store.Labels.FindByID(ctx, req.LabelID)
	if err != nil {
		return nil, err
	}
	if label == nil {
		return nil, pkgErrors.ErrLabelNotFound
	}

	attached, err := s.store.TaskLabels.Exists(ctx, task.ID, label.ID)
	if err != nil {
		return nil, err
	}
	if attached {
		return nil, pkgErrors.ErrLabelAttached
	}
	if err := s.store.TaskLabels.Attach(ctx, task.ID, label.ID); err != nil {
		if pkgErrors.Is(err, pkgErrors.KindConflict) {
			return nil, pkgErrors.ErrLabelAttached
		}
		return nil, err
	}
	return s.load(ctx, task.ID)
}

func (s *taskService) RemoveLabel(ctx context.Context, taskID, labelID, userID string) (*dto.TaskResponse, error) {
	task, err := s.accessibleTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	removed, err := s.store.TaskLabels.Detach(ctx, task.ID, labelID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, pkgErrors.ErrLabelDetached
	}
	return s.load(ctx, task.ID)
}

// accessibleTask 任务不存在返回 NotFound, 否则按所属项目检查访问权限
func (s *taskService) accessibleTask(ctx context.Context, taskID, userID string) (*model.Task, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, pkgErrors.ErrTaskNotFound
	}
	if _, err := s.authz.CheckProjectAccess(ctx, task.ProjectID, userID); err != nil {
		return nil, err
	}
	return task, nil
}

// resolveAssignee 空值表示取消指派
func (s *taskService) resolveAssignee(ctx context.Context, assigneeID *string) (*string, error) {
	id := trimmedOrNil(assigneeID)
	if id == nil {
		return nil, nil
	}
	user, err := s.store.Users.FindByID(ctx, *id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, pkgErrors.ErrAssigneeMissing
	}
	return id, nil
}

// resolveLabels 去重后要求全部存在
func (s *taskService) resolveLabels(ctx context.Context, labelIDs []string) ([]string, error) {
	ids := lo.Uniq(lo.Compact(labelIDs))
	if len(ids) == 0 {
		return nil, nil
	}
	labels, err := s.store.Labels.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(labels) != len(ids) {
		return nil, pkgErrors.ErrLabelNotFound
	}
	return ids, nil
}

func (s *taskService) load(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, pkgErrors.ErrTaskNotFound
	}
	return toTaskResponse(task), nil
}
