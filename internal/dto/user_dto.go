package dto

import (
	"time"

	"taskboard/internal/model"
)

// UserInfo 对外暴露的用户信息, 不含密码
type UserInfo struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}
