package rate

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	//go:embed tokenbucket.lua
	tokenBucketLua       string
	tokenBucketLuaScript = redis.NewScript(tokenBucketLua)
)

// Redis 基于 Redis 的分布式令牌桶，多个实例共享同一额度
type Redis struct {
	client redis.UniversalClient
	prefix string
	rate   float64
	burst  int
	script *redis.Script
}

// NewRedis 连接 Redis 并创建令牌桶限流器
func NewRedis(ctx context.Context, c RedisConfig, r float64, burst int) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     c.Addr,
		Username: c.Username,
		Password: c.Password,
		DB:       c.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis %s: %w", c.Addr, err)
	}

	return NewRedisWithClient(client, c.Prefix, r, burst), nil
}

// NewRedisWithClient 使用已有客户端创建令牌桶限流器
func NewRedisWithClient(client redis.UniversalClient, prefix string, r float64, burst int) *Redis {
	return &Redis{
		client: client,
		prefix: prefix,
		rate:   r,
		burst:  burst,
		script: tokenBucketLuaScript,
	}
}

// Allow 消耗 key 对应桶中的一个令牌
func (l *Redis) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.script.Run(ctx, l.client, []string{l.prefix + key}, l.rate, l.burst).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Close 关闭 Redis 客户端
func (l *Redis) Close() error {
	return l.client.Close()
}
