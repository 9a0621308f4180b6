package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CategoryLabel 维度对应的可读描述
type CategoryLabel struct {
	Strengths      []string `json:"strengths" yaml:"strengths"`
	Recommendation string   `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// weakness 生成 "Developing xxx" 形式的待提升项
func (l CategoryLabel) weakness() string {
	if len(l.Strengths) == 0 {
		return ""
	}
	return "Developing " + lowerFirst(l.Strengths[0])
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// DefaultLabels 内置维度标签表
func DefaultLabels() map[Category]CategoryLabel {
	return map[Category]CategoryLabel{
		ConcreteExperience: {
			Strengths:      []string{"Hands-on learning", "Practical application"},
			Recommendation: "Focus on experiential learning activities",
		},
		ReflectiveObservation: {
			Strengths:      []string{"Critical thinking", "Reflective analysis"},
			Recommendation: "Engage in reflective journaling",
		},
		AbstractConceptualization: {
			Strengths:      []string{"Theoretical understanding", "Conceptual thinking"},
			Recommendation: "Study theoretical frameworks",
		},
		ActiveExperimentation: {
			Strengths:      []string{"Problem-solving", "Innovation"},
			Recommendation: "Participate in project-based learning",
		},
		Analytical: {
			Strengths:      []string{"Logical analysis", "Structured problem-solving"},
			Recommendation: "Work through structured problem sets",
		},
		Creative: {
			Strengths:      []string{"Original thinking", "Idea generation"},
			Recommendation: "Take on open-ended creative projects",
		},
		Practical: {
			Strengths:      []string{"Real-world application", "Adaptability"},
			Recommendation: "Seek internships and practical attachments",
		},
		System1: {
			Strengths:      []string{"Intuitive decision-making", "Quick judgment"},
			Recommendation: "Practise checking first impressions against evidence",
		},
		System2: {
			Strengths:      []string{"Deliberate reasoning", "Evidence-based decisions"},
			Recommendation: "Use timed exercises to build decisiveness",
		},
	}
}

func cloneLabels(src map[Category]CategoryLabel) map[Category]CategoryLabel {
	dst := make(map[Category]CategoryLabel, len(src))
	for c, l := range src {
		dst[c] = CategoryLabel{
			Strengths:      append([]string(nil), l.Strengths...),
			Recommendation: strings.TrimSpace(l.Recommendation),
		}
	}
	return dst
}
