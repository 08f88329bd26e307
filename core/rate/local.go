package rate

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxLocalKeys 触发空闲条目清理的键数量
	maxLocalKeys = 10000
	idleTTL      = 10 * time.Minute
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Local 进程内令牌桶，每个 key 一个桶
type Local struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*bucket
	now     func() time.Time
}

// NewLocal 创建进程内限流器，r 为每秒补充的令牌数，burst 为桶容量
func NewLocal(r float64, burst int) *Local {
	return &Local{
		limit:   rate.Limit(r),
		burst:   burst,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Allow 消耗 key 对应桶中的一个令牌
func (l *Local) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxLocalKeys {
			l.sweep(now)
		}
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	return b.limiter.AllowN(now, 1), nil
}

// sweep 删除空闲超过 idleTTL 的桶
func (l *Local) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > idleTTL {
			delete(l.buckets, k)
		}
	}
}

// Close 无资源需要释放
func (l *Local) Close() error {
	return nil
}
