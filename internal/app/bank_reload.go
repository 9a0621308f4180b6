package app

import (
	"context"
	"sync"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/internal/service"
	"thinking_styles_backend/pkg/configwatcher"
	"thinking_styles_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// bankReloader 配置变更或题库文件本身被修改时重建评分引擎。
// 题库路径变化后改为监听新文件。
type bankReloader struct {
	mu       sync.Mutex
	engine   *service.EngineHolder
	current  config.AssessmentConfig
	debounce time.Duration
	parent   context.Context
	cancel   context.CancelFunc
}

func newBankReloader(engine *service.EngineHolder, current config.AssessmentConfig) *bankReloader {
	return &bankReloader{
		engine:   engine,
		current:  current,
		debounce: configwatcher.DefaultDebounce,
	}
}

// Start 开始监听当前题库文件，ctx 取消后停止
func (r *bankReloader) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parent = ctx
	r.watchLocked()
}

// Apply 配置回调，题库路径和严格模式都没变时什么也不做
func (r *bankReloader) Apply(next config.AssessmentConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if next.QuestionBankPath == r.current.QuestionBankPath && next.StrictQuestions == r.current.StrictQuestions {
		return
	}
	pathChanged := next.QuestionBankPath != r.current.QuestionBankPath
	if !r.rebuildLocked(next) {
		return
	}
	if pathChanged {
		r.watchLocked()
	}
}

func (r *bankReloader) fileChanged(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if path != r.current.QuestionBankPath {
		return
	}
	r.rebuildLocked(r.current)
}

func (r *bankReloader) rebuildLocked(next config.AssessmentConfig) bool {
	engine, err := service.BuildEngine(next)
	if err != nil {
		logger.Log.Error("题库重新加载失败，继续使用旧题库", zap.String("path", next.QuestionBankPath), zap.Error(err))
		return false
	}
	r.engine.Swap(engine)
	r.current = next
	logger.Log.Info("题库已重新加载",
		zap.String("path", next.QuestionBankPath),
		zap.Bool("strict", next.StrictQuestions),
	)
	return true
}

// watchLocked 停掉旧的监听，内置题库不需要监听
func (r *bankReloader) watchLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	path := r.current.QuestionBankPath
	if r.parent == nil || path == "" {
		return
	}

	ctx, cancel := context.WithCancel(r.parent)
	r.cancel = cancel
	go func() {
		if err := configwatcher.WatchFile(ctx, path, r.debounce, func() { r.fileChanged(path) }); err != nil {
			logger.Log.Error("题库文件监听启动失败", zap.String("path", path), zap.Error(err))
		}
	}()
}
