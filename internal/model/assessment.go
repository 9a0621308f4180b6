package model

import (
	"thinking_styles_backend/internal/scoring"
	"time"

	"gorm.io/datatypes"
)

// Assessment 一次完成的问卷，每个用户每种问卷只保留一份
// swagger:model Assessment
type Assessment struct {
	BaseModel
	UserID      uint                                       `gorm:"uniqueIndex:idx_assessment_user_type;not null" json:"userId"`
	Type        scoring.AssessmentType                     `gorm:"size:32;uniqueIndex:idx_assessment_user_type;not null" json:"type"`
	Responses   datatypes.JSONSlice[scoring.Response]      `json:"responses"`
	Scores      datatypes.JSONType[scoring.CategoryScores] `json:"scores"`
	CompletedAt time.Time                                  `json:"completedAt"`
}

func (Assessment) TableName() string {
	return "assessments"
}
