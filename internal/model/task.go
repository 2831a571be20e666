package model

import (
	"gorm.io/datatypes"
)

const (
	TaskTableName      = "tasks"
	TaskLabelTableName = "task_labels"
)

// Task 任务模型, project_id 创建后不可变
type Task struct {
	BaseModel
	ProjectID   string          `gorm:"size:36;not null;index" json:"project_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description"`
	Status      string          `gorm:"size:20;not null;default:Todo;index" json:"status"`
	Priority    string          `gorm:"size:20;not null;default:Medium" json:"priority"`
	AssigneeID  *string         `gorm:"size:36;index" json:"assignee_id"`
	DueDate     *datatypes.Date `json:"due_date"`

	Project    *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee   *User       `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	TaskLabels []TaskLabel `gorm:"foreignKey:TaskID" json:"task_labels,omitempty"`
}

func (Task) TableName() string {
	return TaskTableName
}

// TaskLabel 任务与标签的关联
type TaskLabel struct {
	TaskID  string `gorm:"primaryKey;size:36" json:"task_id"`
	LabelID string `gorm:"primaryKey;size:36;index" json:"label_id"`

	Label *Label `gorm:"foreignKey:LabelID" json:"label,omitempty"`
}

func (TaskLabel) TableName() string {
	return TaskLabelTableName
}
