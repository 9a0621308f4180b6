package scoring

import "sort"

// SynthesizeProfile 合并多份问卷得分生成画像。
//
// 所有维度按输入顺序展开后稳定降序排序，首位为主风格，次位为副风格
// （只有一个维度时两者相同，没有维度时均为空）。
// 优势、待提升项和学习建议按维度出现顺序生成，同一维度只计一次。
func (e *Engine) SynthesizeProfile(scores ...CategoryScores) ThinkingStyleProfile {
	var flat []CategoryScore
	for _, s := range scores {
		flat = append(flat, s...)
	}

	profile := ThinkingStyleProfile{
		Strengths:       []string{},
		Weaknesses:      []string{},
		Recommendations: []string{},
	}

	ranked := append([]CategoryScore(nil), flat...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Mean > ranked[j].Mean
	})
	if len(ranked) > 0 {
		profile.PrimaryStyle = string(ranked[0].Category)
		profile.SecondaryStyle = profile.PrimaryStyle
	}
	if len(ranked) > 1 {
		profile.SecondaryStyle = string(ranked[1].Category)
	}

	seen := make(map[Category]bool, len(flat))
	for _, cs := range flat {
		if seen[cs.Category] {
			continue
		}
		seen[cs.Category] = true

		label, ok := e.labels[cs.Category]
		if !ok {
			continue
		}
		switch {
		case cs.Mean > StrengthThreshold:
			profile.Strengths = append(profile.Strengths, label.Strengths...)
			if label.Recommendation != "" {
				profile.Recommendations = append(profile.Recommendations, label.Recommendation)
			}
		case cs.Mean < WeaknessThreshold:
			if w := label.weakness(); w != "" {
				profile.Weaknesses = append(profile.Weaknesses, w)
			}
		}
	}
	return profile
}
