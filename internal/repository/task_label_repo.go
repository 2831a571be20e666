package repository

import (
	"context"

	"gorm.io/gorm"

	"taskboard/internal/model"
)

type TaskLabelRepository interface {
	Attach(ctx context.Context, taskID string, labelIDs ...string) error
	Detach(ctx context.Context, taskID, labelID string) (bool, error)
	Exists(ctx context.Context, taskID, labelID string) (bool, error)
	DeleteByTask(ctx context.Context, taskID string) error
	DeleteByLabel(ctx context.Context, labelID string) error
	DeleteByProject(ctx context.Context, projectID string) error
}

type taskLabelRepository struct {
	db *gorm.DB
}

func NewTaskLabelRepository(db *gorm.DB) TaskLabelRepository {
	return &taskLabelRepository{db: db}
}

func (r *taskLabelRepository) Attach(ctx context.Context, taskID string, labelIDs ...string) error {
	if len(labelIDs) == 0 {
		return nil
	}
	rows := make([]model.TaskLabel, 0, len(labelIDs))
	for _, labelID := range labelIDs {
		rows = append(rows, model.TaskLabel{TaskID: taskID, LabelID: labelID})
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return dbError("attach labels failed", err)
	}
	return nil
}

// Detach 返回是否确实删除了关联
func (r *taskLabelRepository) Detach(ctx context.Context, taskID, labelID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("task_id = ? AND label_id = ?", taskID, labelID).
		Delete(&model.TaskLabel{})
	if result.Error != nil {
		return false, dbError("detach label failed", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *taskLabelRepository) Exists(ctx context.Context, taskID, labelID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TaskLabel{}).
		Where("task_id = ? AND label_id = ?", taskID, labelID).
		Count(&count).Error
	if err != nil {
		return false, dbError("query task label failed", err)
	}
	return count > 0, nil
}

func (r *taskLabelRepository) DeleteByTask(ctx context.Context, taskID string) error {
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&model.TaskLabel{}).Error; err != nil {
		return dbError("clear task labels failed", err)
	}
	return nil
}

func (r *taskLabelRepository) DeleteByLabel(ctx context.Context, labelID string) error {
	if err := r.db.WithContext(ctx).Where("label_id = ?", labelID).Delete(&model.TaskLabel{}).Error; err != nil {
		return dbError("clear label attachments failed", err)
	}
	return nil
}

func (r *taskLabelRepository) DeleteByProject(ctx context.Context, projectID string) error {
	tasks := r.db.Model(&model.Task{}).Select("id").Where("project_id = ?", projectID)
	if err := r.db.WithContext(ctx).Where("task_id IN (?)", tasks).Delete(&model.TaskLabel{}).Error; err != nil {
		return dbError("clear project task labels failed", err)
	}
	return nil
}
