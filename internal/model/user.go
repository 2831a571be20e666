package model

const UserTableName = "users"

// User 本地用户模型
type User struct {
	BaseModel
	Username string `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
}

// TableName 指定表名
func (User) TableName() string {
	return UserTableName
}
