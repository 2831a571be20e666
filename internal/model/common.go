package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDModel 字符串主键, 创建时生成 UUID
type IDModel struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`
}

// BeforeCreate fills in the id unless the caller already chose one.
func (m *IDModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type BaseModel struct {
	IDModel
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Project{},
		&ProjectMember{},
		&Label{},
		&Task{},
		&TaskLabel{},
	}
}
