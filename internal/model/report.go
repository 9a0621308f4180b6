package model

import (
	"thinking_styles_backend/internal/scoring"
	"time"

	"gorm.io/datatypes"
)

// Insights 报告中的补充说明
type Insights struct {
	LearningPreferences []string `json:"learningPreferences"`
	DecisionMakingStyle string   `json:"decisionMakingStyle"`
	CommunicationStyle  string   `json:"communicationStyle"`
}

// swagger:model Report
type Report struct {
	BaseModel
	UserID           uint                                             `gorm:"index;not null" json:"userId"`
	AssessmentIDs    datatypes.JSONSlice[uint]                        `json:"assessments"`
	Scores           datatypes.JSONType[scoring.CategoryScores]       `json:"scores"`
	OverallProfile   datatypes.JSONType[scoring.ThinkingStyleProfile] `json:"overallProfile"`
	EducationMapping datatypes.JSONType[scoring.EducationMapping]     `json:"educationMapping"`
	Insights         datatypes.JSONType[Insights]                     `json:"insights"`
	GeneratedAt      time.Time                                        `json:"generatedAt"`

	Reflections []Reflection `gorm:"foreignKey:ReportID" json:"reflections,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}

// ReportExport 报告导出到对象存储后的记录
type ReportExport struct {
	UUIDBase
	ReportID  uint   `gorm:"index;not null" json:"reportId"`
	UserID    uint   `gorm:"index;not null" json:"userId"`
	Format    string `gorm:"size:10;not null" json:"format"`
	ObjectKey string `gorm:"size:255;not null" json:"objectKey"`
	URL       string `gorm:"size:512" json:"url"`
	Size      int64  `json:"size"`
}

func (ReportExport) TableName() string {
	return "report_exports"
}
