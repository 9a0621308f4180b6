package scoring

// MapEducation 按主风格精确匹配推荐规则，拼接命中的分组后去重并截断。
// 未命中任何规则时四个列表均为空，不视为错误。
// 第二个参数是次风格，目前不参与计算。
func (e *Engine) MapEducation(primary, _ string) EducationMapping {
	rule, ok := e.catalog.Rules[Category(primary)]
	if !ok {
		return EducationMapping{
			SHSTracks:               []string{},
			TertiaryPrograms:        []string{},
			CareerSuggestions:       []string{},
			LearningRecommendations: []string{},
		}
	}

	return EducationMapping{
		SHSTracks:               collect(e.catalog.SHSTracks, rule.SHSTracks, MaxSHSTracks),
		TertiaryPrograms:        collect(e.catalog.TertiaryPrograms, rule.TertiaryPrograms, MaxTertiaryPrograms),
		CareerSuggestions:       collect(e.catalog.Careers, rule.Careers, MaxCareerSuggestions),
		LearningRecommendations: collect(e.catalog.LearningTips, rule.LearningTips, MaxLearningRecommendations),
	}
}

// collect 依次拼接分组，保留首次出现的顺序去重，最多 limit 项
func collect(table map[string][]string, keys []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, k := range keys {
		for _, item := range table[k] {
			if len(out) == limit {
				return out
			}
			if seen[item] {
				continue
			}
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
