package dto

import "time"

// TaskCreateRequest 创建任务
type TaskCreateRequest struct {
	ProjectID   string   `json:"project_id" validate:"required"`
	Title       string   `json:"title" validate:"trimmed_min=3"`
	Description *string  `json:"description"`
	Status      string   `json:"status" validate:"omitempty,oneof='Todo' 'In Progress' 'Done'"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	AssigneeID  *string  `json:"assignee_id"`
	DueDate     *string  `json:"due_date"`
	LabelIDs    []string `json:"label_ids"`
}

// TaskUpdateRequest 部分更新; label_ids 出现(包括空数组)即整体替换标签
type TaskUpdateRequest struct {
	Title       *string          `json:"title" validate:"omitempty,trimmed_min=3"`
	Description Optional[string] `json:"description" swaggertype:"string"`
	Status      *string          `json:"status" validate:"omitempty,oneof='Todo' 'In Progress' 'Done'"`
	Priority    *string          `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	AssigneeID  Optional[string] `json:"assignee_id" swaggertype:"string"`
	DueDate     Optional[string] `json:"due_date" swaggertype:"string"`
	LabelIDs    *[]string        `json:"label_ids"`
}

// TaskListQuery 任务列表过滤; 不带 project_id 时返回当前用户被指派的任务
type TaskListQuery struct {
	ProjectID  string `form:"project_id"`
	Status     string `form:"status"`
	Priority   string `form:"priority"`
	AssigneeID string `form:"assignee_id"`
	LabelID    string `form:"label_id"`
}

// TaskLabelRequest 给任务添加标签
type TaskLabelRequest struct {
	LabelID string `json:"label_id" validate:"required"`
}

// ProjectBrief 任务所属项目
type ProjectBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string           `json:"id"`
	ProjectID   string           `json:"project_id"`
	Project     *ProjectBrief    `json:"project,omitempty"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	Status      string           `json:"status"`
	Priority    string           `json:"priority"`
	AssigneeID  *string          `json:"assignee_id"`
	Assignee    *UserInfo        `json:"assignee,omitempty"`
	DueDate     *string          `json:"due_date"`
	Labels      []*LabelResponse `json:"labels"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// TaskBoard 看板: 按状态分三列
type TaskBoard struct {
	Todo       []*TaskResponse `json:"todo"`
	InProgress []*TaskResponse `json:"in_progress"`
	Done       []*TaskResponse `json:"done"`
}
