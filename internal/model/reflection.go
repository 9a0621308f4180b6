package model

// Reflection 学生阅读报告后的反思与评分
// swagger:model
type Reflection struct {
	UUIDBase
	UserID   uint   `gorm:"index;not null;comment:用户ID" json:"userId"`
	ReportID uint   `gorm:"index;not null;comment:报告ID" json:"reportId"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Rating   int    `gorm:"not null" json:"rating"`

	// 关联用户
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Reflection) TableName() string {
	return "report_reflections"
}
