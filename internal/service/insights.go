package service

import (
	"thinking_styles_backend/internal/model"
	"thinking_styles_backend/internal/scoring"
)

var learningPreferenceText = map[scoring.Category]string{
	scoring.ConcreteExperience:        "Learning through direct, hands-on experience",
	scoring.ReflectiveObservation:     "Watching and reflecting before acting",
	scoring.AbstractConceptualization: "Building understanding from theories and models",
	scoring.ActiveExperimentation:     "Trying ideas out and testing them in practice",
}

var communicationStyleText = map[scoring.Category]string{
	scoring.Analytical: "Logical and evidence-based",
	scoring.Creative:   "Expressive and imaginative",
	scoring.Practical:  "Direct and action-oriented",
}

const (
	decisionIntuitive    = "Intuitive: relies on quick, instinctive judgments"
	decisionDeliberative = "Deliberative: prefers careful, step-by-step reasoning"
	decisionBalanced     = "Balanced: switches between intuition and deliberate analysis"
)

var kolbModes = []scoring.Category{
	scoring.ConcreteExperience,
	scoring.ReflectiveObservation,
	scoring.AbstractConceptualization,
	scoring.ActiveExperimentation,
}

// deriveInsights 根据各问卷得分生成报告的补充说明，缺少对应问卷时留空
func deriveInsights(scores scoring.CategoryScores) model.Insights {
	insights := model.Insights{LearningPreferences: []string{}}
	means := scores.Map()

	// 学习偏好：所有强项模式，没有强项时取最高的模式
	var dominant scoring.Category
	best := -1.0
	for _, c := range kolbModes {
		m, ok := means[c]
		if !ok {
			continue
		}
		if m > scoring.StrengthThreshold {
			insights.LearningPreferences = append(insights.LearningPreferences, learningPreferenceText[c])
		}
		if m > best {
			best, dominant = m, c
		}
	}
	if len(insights.LearningPreferences) == 0 && dominant != "" {
		insights.LearningPreferences = append(insights.LearningPreferences, learningPreferenceText[dominant])
	}

	s1, ok1 := means[scoring.System1]
	s2, ok2 := means[scoring.System2]
	if ok1 && ok2 {
		switch {
		case s1 > s2:
			insights.DecisionMakingStyle = decisionIntuitive
		case s2 > s1:
			insights.DecisionMakingStyle = decisionDeliberative
		default:
			insights.DecisionMakingStyle = decisionBalanced
		}
	}

	best = -1.0
	for _, c := range []scoring.Category{scoring.Analytical, scoring.Creative, scoring.Practical} {
		if m, ok := means[c]; ok && m > best {
			best = m
			insights.CommunicationStyle = communicationStyleText[c]
		}
	}
	return insights
}
