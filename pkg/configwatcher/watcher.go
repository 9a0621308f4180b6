package configwatcher

import (
	"context"
	"path/filepath"
	"thinking_styles_backend/internal/config"
	"thinking_styles_backend/pkg/logger"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = time.Second

type ConfigReloader func(cfg *config.Config)

// Watch 监听配置目录，config.yaml 变化后防抖重新加载并回调。阻塞直到 ctx 取消。
func Watch(ctx context.Context, dir string, debounce time.Duration, reloader ConfigReloader) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	target := config.FilePath(absDir)

	return WatchFile(ctx, target, debounce, func() {
		// 重新加载配置
		newCfg, err := config.LoadConfig(absDir)
		if err != nil {
			logger.Log.Error("Failed to reload config", zap.Error(err))
			return
		}
		logger.Log.Info("Config reloaded", zap.String("path", target))
		reloader(newCfg)
	})
}

// WatchFile 文件变化后防抖回调 onChange。
// 监听所在目录而不是文件本身，编辑器以重命名方式保存时同样生效。阻塞直到 ctx 取消。
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	// go1.23 起 Stop/Reset 后不会收到过期值，无需手动排空
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// 防抖处理
			timer.Reset(debounce)
		case <-timer.C:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Log.Error("File watcher error", zap.String("path", target), zap.Error(err))
		}
	}
}
