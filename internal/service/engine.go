package service

import (
	"sync/atomic"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/scoring"
)

// EngineHolder 持有当前评分引擎，配置热更新时整体替换
type EngineHolder struct {
	p atomic.Pointer[scoring.Engine]
}

func NewEngineHolder(e *scoring.Engine) *EngineHolder {
	h := &EngineHolder{}
	h.p.Store(e)
	return h
}

func (h *EngineHolder) Get() *scoring.Engine {
	return h.p.Load()
}

func (h *EngineHolder) Swap(e *scoring.Engine) {
	h.p.Store(e)
}

// BuildEngine 按配置加载题库，未配置路径时使用内置题库
func BuildEngine(cfg config.AssessmentConfig) (*scoring.Engine, error) {
	bank := scoring.DefaultBank()
	if cfg.QuestionBankPath != "" {
		loaded, err := scoring.LoadBankFile(cfg.QuestionBankPath)
		if err != nil {
			return nil, err
		}
		bank = loaded
	}

	var opts []scoring.Option
	if cfg.StrictQuestions {
		opts = append(opts, scoring.WithStrictQuestions())
	}
	return scoring.NewEngine(bank, opts...)
}
