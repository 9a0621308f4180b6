package scoring

import "errors"

// AssessmentType 问卷类型
type AssessmentType string

const (
	Kolb        AssessmentType = "kolb"
	Sternberg   AssessmentType = "sternberg"
	DualProcess AssessmentType = "dual_process"
)

// Category 问卷维度，同时也是画像中的风格名
type Category string

const (
	ConcreteExperience        Category = "concrete_experience"
	ReflectiveObservation     Category = "reflective_observation"
	AbstractConceptualization Category = "abstract_conceptualization"
	ActiveExperimentation     Category = "active_experimentation"

	Analytical Category = "analytical"
	Creative   Category = "creative"
	Practical  Category = "practical"

	System1 Category = "system_1"
	System2 Category = "system_2"
)

const (
	MinScore = 1
	MaxScore = 5

	// 画像阈值，均为严格比较
	StrengthThreshold = 3.5
	WeaknessThreshold = 2.5
)

// 结果列表上限
const (
	MaxSHSTracks               = 4
	MaxTertiaryPrograms        = 5
	MaxCareerSuggestions       = 8
	MaxLearningRecommendations = 5
)

var (
	ErrUnknownAssessmentType = errors.New("unknown assessment type")
	// 仅严格模式下返回
	ErrUnknownQuestion = errors.New("unknown question id")
	ErrScoreOutOfRange = errors.New("score out of range")
)

// swagger:model Question
type Question struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}

// swagger:model Response
type Response struct {
	QuestionID string `json:"questionId" yaml:"questionId"`
	Score      int    `json:"score" yaml:"score"`
}

// ScoredResponse 通过校验的作答，已附上所属维度
type ScoredResponse struct {
	QuestionID string
	Category   Category
	Score      int
}

// CategoryScore 单个维度的平均分
type CategoryScore struct {
	Category Category `json:"category" yaml:"category"`
	Mean     float64  `json:"mean" yaml:"mean"`
}

// CategoryScores 有序的维度得分，顺序即题库中的维度声明顺序。
// 未作答的维度不会出现，调用方应视为"未评估"而不是 0 分。
type CategoryScores []CategoryScore

// Get 返回某维度的平均分，ok 为 false 表示未评估
func (s CategoryScores) Get(c Category) (float64, bool) {
	for _, cs := range s {
		if cs.Category == c {
			return cs.Mean, true
		}
	}
	return 0, false
}

func (s CategoryScores) Map() map[Category]float64 {
	m := make(map[Category]float64, len(s))
	for _, cs := range s {
		m[cs.Category] = cs.Mean
	}
	return m
}

// swagger:model ThinkingStyleProfile
type ThinkingStyleProfile struct {
	PrimaryStyle    string   `json:"primaryStyle" yaml:"primaryStyle"`
	SecondaryStyle  string   `json:"secondaryStyle" yaml:"secondaryStyle"`
	Strengths       []string `json:"strengths" yaml:"strengths"`
	Weaknesses      []string `json:"weaknesses" yaml:"weaknesses"`
	Recommendations []string `json:"recommendations" yaml:"recommendations"`
}

// swagger:model EducationMapping
type EducationMapping struct {
	SHSTracks               []string `json:"shsTracks" yaml:"shsTracks"`
	TertiaryPrograms        []string `json:"tertiaryPrograms" yaml:"tertiaryPrograms"`
	CareerSuggestions       []string `json:"careerSuggestions" yaml:"careerSuggestions"`
	LearningRecommendations []string `json:"learningRecommendations" yaml:"learningRecommendations"`
}

// IsEmpty 主风格没有命中任何规则
func (m EducationMapping) IsEmpty() bool {
	return len(m.SHSTracks) == 0 && len(m.TertiaryPrograms) == 0 &&
		len(m.CareerSuggestions) == 0 && len(m.LearningRecommendations) == 0
}
