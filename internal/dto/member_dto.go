package dto

import "time"

// MemberAddRequest 添加项目成员
type MemberAddRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Role   string `json:"role" validate:"required,oneof=manager developer qa"`
}

// MemberUpdateRoleRequest 修改成员角色
type MemberUpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=manager developer qa"`
}

// MemberResponse 成员响应
type MemberResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	User      *UserInfo `json:"user,omitempty"`
}
