package dto

import (
	"time"
)

// ProjectCreateRequest 创建项目
type ProjectCreateRequest struct {
	Name        string  `json:"name" validate:"trimmed_min=3"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
}

// ProjectUpdateRequest 部分更新, 缺省字段保持不变, null 清空可空字段
type ProjectUpdateRequest struct {
	Name        *string          `json:"name" validate:"omitempty,trimmed_min=3"`
	Description Optional[string] `json:"description" swaggertype:"string"`
	StartDate   Optional[string] `json:"start_date" swaggertype:"string"`
	EndDate     Optional[string] `json:"end_date" swaggertype:"string"`
}

// ProjectStats 项目任务统计
type ProjectStats struct {
	Total      int64 `json:"total"`
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"in_progress"`
	Done       int64 `json:"done"`
}

// ProjectResponse 项目详情
type ProjectResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	StartDate   *string           `json:"start_date"`
	EndDate     *string           `json:"end_date"`
	OwnerID     string            `json:"owner_id"`
	Owner       *UserInfo         `json:"owner,omitempty"`
	Members     []*MemberResponse `json:"members"`
	Tasks       []*TaskResponse   `json:"tasks,omitempty"`
	Stats       *ProjectStats     `json:"stats,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}
