package dto

import "time"

// LabelCreateRequest 创建标签
type LabelCreateRequest struct {
	Name  string `json:"name" validate:"trimmed_min=2"`
	Color string `json:"color" validate:"hex_color"`
}

// LabelUpdateRequest 更新标签, 空值字段不修改
type LabelUpdateRequest struct {
	Name  *string `json:"name" validate:"omitempty,trimmed_min=2"`
	Color *string `json:"color" validate:"omitempty,hex_color"`
}

// LabelResponse 标签响应
type LabelResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
