package scoring

import (
	"fmt"
)

// QuestionSet 单个问卷的题目及维度声明
type QuestionSet struct {
	Type       AssessmentType `json:"type" yaml:"type"`
	Title      string         `json:"title" yaml:"title"`
	Categories []Category     `json:"categories" yaml:"categories"`
	Questions  []Question     `json:"questions" yaml:"questions"`
}

type questionIndex struct {
	set  QuestionSet
	byID map[string]Question
}

// QuestionBank 只读题库，构造后不再修改
type QuestionBank struct {
	order []AssessmentType
	sets  map[AssessmentType]*questionIndex
}

// NewQuestionBank 校验并建立索引：类型不能重复，同一问卷内题号唯一，
// 题目所属维度必须在该问卷中声明。
func NewQuestionBank(sets ...QuestionSet) (*QuestionBank, error) {
	b := &QuestionBank{sets: make(map[AssessmentType]*questionIndex, len(sets))}
	for _, s := range sets {
		if s.Type == "" {
			return nil, fmt.Errorf("question set without type")
		}
		if _, dup := b.sets[s.Type]; dup {
			return nil, fmt.Errorf("duplicate question set %q", s.Type)
		}

		declared := make(map[Category]bool, len(s.Categories))
		for _, c := range s.Categories {
			if declared[c] {
				return nil, fmt.Errorf("%s: category %q declared twice", s.Type, c)
			}
			declared[c] = true
		}

		idx := &questionIndex{
			set: QuestionSet{
				Type:       s.Type,
				Title:      s.Title,
				Categories: append([]Category(nil), s.Categories...),
				Questions:  append([]Question(nil), s.Questions...),
			},
			byID: make(map[string]Question, len(s.Questions)),
		}
		for _, q := range s.Questions {
			if _, dup := idx.byID[q.ID]; dup {
				return nil, fmt.Errorf("%s: duplicate question id %q", s.Type, q.ID)
			}
			if !declared[q.Category] {
				return nil, fmt.Errorf("%s: question %q uses undeclared category %q", s.Type, q.ID, q.Category)
			}
			idx.byID[q.ID] = q
		}

		b.order = append(b.order, s.Type)
		b.sets[s.Type] = idx
	}
	return b, nil
}

// Types 按声明顺序返回问卷类型
func (b *QuestionBank) Types() []AssessmentType {
	return append([]AssessmentType(nil), b.order...)
}

func (b *QuestionBank) Has(t AssessmentType) bool {
	_, ok := b.sets[t]
	return ok
}

// Set 返回问卷的副本
func (b *QuestionBank) Set(t AssessmentType) (QuestionSet, error) {
	idx, ok := b.sets[t]
	if !ok {
		return QuestionSet{}, fmt.Errorf("%w: %q", ErrUnknownAssessmentType, t)
	}
	return QuestionSet{
		Type:       idx.set.Type,
		Title:      idx.set.Title,
		Categories: append([]Category(nil), idx.set.Categories...),
		Questions:  append([]Question(nil), idx.set.Questions...),
	}, nil
}

func (b *QuestionBank) Questions(t AssessmentType) ([]Question, error) {
	s, err := b.Set(t)
	if err != nil {
		return nil, err
	}
	return s.Questions, nil
}

func (b *QuestionBank) lookup(t AssessmentType) (*questionIndex, error) {
	idx, ok := b.sets[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAssessmentType, t)
	}
	return idx, nil
}

// DefaultBank 内置的三套问卷
func DefaultBank() *QuestionBank {
	b, err := NewQuestionBank(defaultQuestionSets()...)
	if err != nil {
		panic(err)
	}
	return b
}

func defaultQuestionSets() []QuestionSet {
	return []QuestionSet{
		{
			Type:  Kolb,
			Title: "Kolb's Experiential Learning Cycle",
			Categories: []Category{
				ConcreteExperience, ReflectiveObservation, AbstractConceptualization, ActiveExperimentation,
			},
			Questions: []Question{
				{ID: "kolb_1", Text: "I learn best when I can try things out and experiment with new ideas.", Category: ConcreteExperience},
				{ID: "kolb_2", Text: "I prefer to observe and reflect before taking action.", Category: ReflectiveObservation},
				{ID: "kolb_3", Text: "I like to analyze information and create theories to understand concepts.", Category: AbstractConceptualization},
				{ID: "kolb_4", Text: "I learn most effectively when I can apply knowledge to solve real problems.", Category: ActiveExperimentation},
				{ID: "kolb_5", Text: "I enjoy hands-on activities and learning through direct experience.", Category: ConcreteExperience},
				{ID: "kolb_6", Text: "I need time to think about what I have learned before moving forward.", Category: ReflectiveObservation},
				{ID: "kolb_7", Text: "I prefer structured learning with clear theories and frameworks.", Category: AbstractConceptualization},
				{ID: "kolb_8", Text: "I like to test ideas and see immediate results from my actions.", Category: ActiveExperimentation},
				{ID: "kolb_9", Text: "I learn better when I can connect new information to my personal experiences.", Category: ConcreteExperience},
				{ID: "kolb_10", Text: "I prefer to watch others and learn from their experiences.", Category: ReflectiveObservation},
				{ID: "kolb_11", Text: "I enjoy reading and studying theoretical concepts.", Category: AbstractConceptualization},
				{ID: "kolb_12", Text: "I learn best by doing and making things happen.", Category: ActiveExperimentation},
			},
		},
		{
			Type:       Sternberg,
			Title:      "Sternberg's Triarchic Theory of Intelligence",
			Categories: []Category{Analytical, Creative, Practical},
			Questions: []Question{
				{ID: "sternberg_1", Text: "I excel at analyzing problems and finding logical solutions.", Category: Analytical},
				{ID: "sternberg_2", Text: "I enjoy coming up with creative and original ideas.", Category: Creative},
				{ID: "sternberg_3", Text: "I am good at applying knowledge to practical situations.", Category: Practical},
				{ID: "sternberg_4", Text: "I prefer structured problems with clear right and wrong answers.", Category: Analytical},
				{ID: "sternberg_5", Text: "I like to think outside the box and explore new possibilities.", Category: Creative},
				{ID: "sternberg_6", Text: "I can adapt well to different environments and situations.", Category: Practical},
				{ID: "sternberg_7", Text: "I enjoy breaking down complex problems into smaller parts.", Category: Analytical},
				{ID: "sternberg_8", Text: "I am comfortable with ambiguity and uncertainty.", Category: Creative},
				{ID: "sternberg_9", Text: "I can easily relate theoretical concepts to real-world applications.", Category: Practical},
				{ID: "sternberg_10", Text: "I prefer to work with facts, data, and evidence.", Category: Analytical},
				{ID: "sternberg_11", Text: "I enjoy brainstorming and generating multiple solutions.", Category: Creative},
				{ID: "sternberg_12", Text: "I am good at reading people and understanding social dynamics.", Category: Practical},
			},
		},
		{
			Type:       DualProcess,
			Title:      "Dual Process Theory",
			Categories: []Category{System1, System2},
			Questions: []Question{
				{ID: "dual_1", Text: "I make decisions quickly based on my first impression.", Category: System1},
				{ID: "dual_2", Text: "I carefully analyze all available information before making decisions.", Category: System2},
				{ID: "dual_3", Text: "I trust my gut feelings when making important choices.", Category: System1},
				{ID: "dual_4", Text: "I prefer to take time to think through problems systematically.", Category: System2},
				{ID: "dual_5", Text: "I often rely on patterns and past experiences to make decisions.", Category: System1},
				{ID: "dual_6", Text: "I like to gather detailed information and consider all options.", Category: System2},
				{ID: "dual_7", Text: "I make decisions based on what feels right in the moment.", Category: System1},
				{ID: "dual_8", Text: "I prefer to use logical reasoning and evidence in decision-making.", Category: System2},
				{ID: "dual_9", Text: "I can make quick judgments about people and situations.", Category: System1},
				{ID: "dual_10", Text: "I like to weigh pros and cons before making important decisions.", Category: System2},
				{ID: "dual_11", Text: "I often go with my initial reaction to problems.", Category: System1},
				{ID: "dual_12", Text: "I prefer to research and analyze before taking action.", Category: System2},
			},
		},
	}
}
