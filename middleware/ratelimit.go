package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// slidingWindow 按 key 记录窗口内的请求时间
type slidingWindow struct {
	mu     sync.Mutex
	window time.Duration
	hits   map[string][]time.Time
}

// prune 去掉 cutoff 之前的记录
func prune(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// allow 记录一次请求，超过 max 返回 false
func (w *slidingWindow) allow(key string, max int, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	ts := prune(w.hits[key], now.Add(-w.window))
	if len(ts) >= max {
		w.hits[key] = ts
		return false
	}
	w.hits[key] = append(ts, now)
	return true
}

func (w *slidingWindow) cleanup(now time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, ts := range w.hits {
		if ts = prune(ts, now.Add(-w.window)); len(ts) == 0 {
			delete(w.hits, key)
		} else {
			w.hits[key] = ts
		}
	}
}

// LoginRateLimit 登录/注册接口限流
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	sw := &slidingWindow{window: window, hits: make(map[string][]time.Time)}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			sw.cleanup(now)
		}
	}()

	return func(c *gin.Context) {
		if !sw.allow(c.ClientIP(), maxAttempts, time.Now()) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "登录尝试过于频繁，请稍后再试",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
