// Package scoring 实现问卷计分、思维风格画像与加纳教育推荐映射。
//
// Engine 在启动时构造一次，之后只读，可在多个请求间并发使用。
// 所有方法都返回新分配的结果，不持有调用方传入的切片。
package scoring

import (
	"fmt"
)

type Engine struct {
	bank    *QuestionBank
	catalog *Catalog
	labels  map[Category]CategoryLabel
	strict  bool
}

type Option func(*Engine)

// WithStrictQuestions 未知题号或越界分值直接报错，默认静默丢弃
func WithStrictQuestions() Option {
	return func(e *Engine) { e.strict = true }
}

func WithCatalog(c *Catalog) Option {
	return func(e *Engine) { e.catalog = c }
}

func WithLabels(labels map[Category]CategoryLabel) Option {
	return func(e *Engine) { e.labels = cloneLabels(labels) }
}

func NewEngine(bank *QuestionBank, opts ...Option) (*Engine, error) {
	if bank == nil {
		return nil, fmt.Errorf("question bank is required")
	}
	e := &Engine{
		bank:    bank,
		catalog: DefaultCatalog(),
		labels:  DefaultLabels(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if err := e.catalog.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) Bank() *QuestionBank { return e.bank }

func (e *Engine) Strict() bool { return e.strict }

// Normalize 按题库校验作答。宽松模式下未知题号和 1..5 以外的分值被丢弃。
func (e *Engine) Normalize(t AssessmentType, responses []Response) ([]ScoredResponse, error) {
	idx, err := e.bank.lookup(t)
	if err != nil {
		return nil, err
	}

	out := make([]ScoredResponse, 0, len(responses))
	for _, r := range responses {
		q, ok := idx.byID[r.QuestionID]
		if !ok {
			if e.strict {
				return nil, fmt.Errorf("%w: %q in %s", ErrUnknownQuestion, r.QuestionID, t)
			}
			continue
		}
		if r.Score < MinScore || r.Score > MaxScore {
			if e.strict {
				return nil, fmt.Errorf("%w: %s=%d", ErrScoreOutOfRange, r.QuestionID, r.Score)
			}
			continue
		}
		out = append(out, ScoredResponse{QuestionID: q.ID, Category: q.Category, Score: r.Score})
	}
	return out, nil
}

// Aggregate 按维度求均值并保留一位小数（四舍五入），顺序与 order 一致。
// 没有作答的维度不输出。
func Aggregate(order []Category, scored []ScoredResponse) CategoryScores {
	sums := make(map[Category]int, len(order))
	counts := make(map[Category]int, len(order))
	for _, s := range scored {
		sums[s.Category] += s.Score
		counts[s.Category]++
	}

	out := make(CategoryScores, 0, len(order))
	for _, c := range order {
		n := counts[c]
		if n == 0 {
			continue
		}
		out = append(out, CategoryScore{Category: c, Mean: roundedMean(sums[c], n)})
	}
	return out
}

// roundedMean 整数运算实现 round(sum/count*10)/10，避免浮点误差
func roundedMean(sum, count int) float64 {
	tenths := (20*sum + count) / (2 * count)
	return float64(tenths) / 10
}

func (e *Engine) NormalizeAndScore(t AssessmentType, responses []Response) (CategoryScores, error) {
	scored, err := e.Normalize(t, responses)
	if err != nil {
		return nil, err
	}
	idx, _ := e.bank.lookup(t)
	return Aggregate(idx.set.Categories, scored), nil
}

func (e *Engine) StudyTips() StudyTips {
	t := e.catalog.StudyTips
	return StudyTips{
		CulturalContext:         append([]string(nil), t.CulturalContext...),
		PracticalTips:           append([]string(nil), t.PracticalTips...),
		ResourceRecommendations: append([]string(nil), t.ResourceRecommendations...),
	}
}

func (e *Engine) Institutions() []Institution {
	out := make([]Institution, len(e.catalog.Institutions))
	for i, inst := range e.catalog.Institutions {
		out[i] = Institution{Name: inst.Name, Kind: inst.Kind, Programs: append([]string(nil), inst.Programs...)}
	}
	return out
}

// Label 返回维度标签，未声明时 ok 为 false
func (e *Engine) Label(c Category) (CategoryLabel, bool) {
	l, ok := e.labels[c]
	if !ok {
		return CategoryLabel{}, false
	}
	return CategoryLabel{Strengths: append([]string(nil), l.Strengths...), Recommendation: l.Recommendation}, true
}
