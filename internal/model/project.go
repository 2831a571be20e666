package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	ProjectTableName       = "projects"
	ProjectMemberTableName = "project_members"
)

// Project 项目模型
type Project struct {
	BaseModel
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	StartDate   *datatypes.Date `json:"start_date"`
	EndDate     *datatypes.Date `json:"end_date"`
	OwnerID     string          `gorm:"size:36;not null;index" json:"owner_id"`

	// Relations
	Owner   *User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks   []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
}

func (Project) TableName() string {
	return ProjectTableName
}

// ProjectMember 项目成员, 不包含项目 owner
type ProjectMember struct {
	IDModel
	ProjectID string    `gorm:"size:36;not null;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:uk_project_user;index" json:"user_id"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	JoinedAt  time.Time `gorm:"not null;autoCreateTime" json:"joined_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectMember) TableName() string {
	return ProjectMemberTableName
}
