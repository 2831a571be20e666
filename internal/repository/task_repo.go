package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"taskboard/internal/model"
	"taskboard/pkg/constants"
)

// TaskFilter 任务过滤条件, 非空字段之间为 AND
type TaskFilter struct {
	Status     string
	Priority   string
	AssigneeID string
	LabelID    string
}

// StatusCount 按状态统计的任务数
type StatusCount struct {
	Status string
	Count  int64
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id string) (*model.Task, error)
	ListByProject(ctx context.Context, projectID string, filter TaskFilter) ([]*model.Task, error)
	ListByAssignee(ctx context.Context, userID string) ([]*model.Task, error)
	CountByStatus(ctx context.Context, projectID string) ([]StatusCount, error)
	// CountAllByStatus 全部项目按状态统计
	CountAllByStatus(ctx context.Context) ([]StatusCount, error)
	// CountOverdue 截止日期早于 today 且未完成的任务数
	CountOverdue(ctx context.Context, today time.Time) (int64, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) error
	Delete(ctx context.Context, id string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func withTaskDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Assignee").
		Preload("TaskLabels.Label")
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	// 关联由 TaskLabelRepository 单独写入
	if err := r.db.WithContext(ctx).Omit("TaskLabels", "Assignee", "Project").Create(task).Error; err != nil {
		return dbError("create task failed", err)
	}
	return nil
}

func (r *taskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := withTaskDetail(r.db.WithContext(ctx)).
		Preload("Project").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError("query task failed", err)
	}
	return &task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string, filter TaskFilter) ([]*model.Task, error) {
	var tasks []*model.Task
	query := withTaskDetail(r.db.WithContext(ctx)).Where("project_id = ?", projectID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.AssigneeID != "" {
		query = query.Where("assignee_id = ?", filter.AssigneeID)
	}
	if filter.LabelID != "" {
		query = query.Where("EXISTS (SELECT 1 FROM task_labels WHERE task_labels.task_id = tasks.id AND task_labels.label_id = ?)", filter.LabelID)
	}

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, dbError("list tasks failed", err)
	}
	return tasks, nil
}

// ListByAssignee 指派给用户的任务, 截止日期近的在前, 无截止日期的排最后
func (r *taskRepository) ListByAssignee(ctx context.Context, userID string) ([]*model.Task, error) {
	var tasks []*model.Task
	err := withTaskDetail(r.db.WithContext(ctx)).
		Preload("Project").
		Where("assignee_id = ?", userID).
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, dbError("list assigned tasks failed", err)
	}
	return tasks, nil
}

func (r *taskRepository) CountByStatus(ctx context.Context, projectID string) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, COUNT(*) AS count").
		Where("project_id = ?", projectID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, dbError("count tasks failed", err)
	}
	return counts, nil
}

func (r *taskRepository) CountAllByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, dbError("count tasks failed", err)
	}
	return counts, nil
}

func (r *taskRepository) CountOverdue(ctx context.Context, today time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("due_date IS NOT NULL AND due_date < ?", datatypes.Date(today)).
		Where("status <> ?", constants.TaskStatusDone).
		Count(&count).Error
	if err != nil {
		return 0, dbError("count overdue tasks failed", err)
	}
	return count, nil
}

func (r *taskRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return dbError("update task failed", err)
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return dbError("delete task failed", err)
	}
	return nil
}

func (r *taskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
		return dbError("delete project tasks failed", err)
	}
	return nil
}
