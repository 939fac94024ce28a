package cache

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache redis 读穿缓存；RDB 为 nil 时只做 singleflight 合并，不落缓存
type Cache struct {
	RDB    *redis.Client
	Prefix string
	sf     singleflight.Group
	gen    atomic.Uint64 // 每次 Del 加一；Del 之前开始的回源结果不落缓存
}

func New(addr, pass string, db int) *Cache {
	if addr == "" {
		return &Cache{}
	}
	return &Cache{
		RDB: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
	}
}

func (c *Cache) Enabled() bool { return c.RDB != nil }

func (c *Cache) Ping(ctx context.Context) error {
	if c.RDB == nil {
		return nil
	}
	return c.RDB.Ping(ctx).Err()
}

func (c *Cache) key(k string) string { return c.Prefix + k }

func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	key = c.key(key)
	// 先读缓存
	if c.RDB != nil {
		if b, err := c.RDB.Get(ctx, key).Bytes(); err == nil {
			return b, nil
		}
	}
	// single flight 合并回源；按代合并，失效后的请求不会拿到失效前的结果
	gen := c.gen.Load()
	v, err, _ := c.sf.Do(key+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		if c.RDB != nil && ttl > 0 && c.gen.Load() == gen {
			_ = c.RDB.Set(ctx, key, b, ttl).Err()
			// Set 与 Del 交错时补删
			if c.gen.Load() != gen {
				_ = c.RDB.Del(ctx, key).Err()
			}
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// Del 写操作后失效相关键
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	c.gen.Add(1)
	if c.RDB == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.RDB.Del(ctx, full...).Err()
}

func (c *Cache) Close() error {
	if c.RDB == nil {
		return nil
	}
	return c.RDB.Close()
}
