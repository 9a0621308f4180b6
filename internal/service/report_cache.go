package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"thinking_styles_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const latestReportKeyPrefix = "report:latest:"

// ReportCache 缓存每个用户最近一份报告
type ReportCache struct {
	Redis *redis.Client
	ttl   atomic.Int64
}

func NewReportCache(rdb *redis.Client, ttl time.Duration) *ReportCache {
	c := &ReportCache{Redis: rdb}
	c.SetTTL(ttl)
	return c
}

func (c *ReportCache) SetTTL(ttl time.Duration) {
	c.ttl.Store(int64(ttl))
}

func (c *ReportCache) TTL() time.Duration {
	return time.Duration(c.ttl.Load())
}

func latestReportKey(userID uint) string {
	return fmt.Sprintf("%s%d", latestReportKeyPrefix, userID)
}

// Get 未命中时返回 nil, nil
func (c *ReportCache) Get(ctx context.Context, userID uint) (*model.Report, error) {
	val, err := c.Redis.Get(ctx, latestReportKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var report model.Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *ReportCache) Set(ctx context.Context, report *model.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, latestReportKey(report.UserID), data, c.TTL()).Err()
}

func (c *ReportCache) Invalidate(ctx context.Context, userID uint) error {
	return c.Redis.Del(ctx, latestReportKey(userID)).Err()
}
