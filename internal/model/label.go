package model

const LabelTableName = "labels"

// Label 全局标签, 名称区分大小写且唯一
type Label struct {
	BaseModel
	Name  string `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Color string `gorm:"size:7;not null" json:"color"`
}

func (Label) TableName() string {
	return LabelTableName
}
