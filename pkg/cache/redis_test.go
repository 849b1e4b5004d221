package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	fail   error
	closed bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.fail != nil {
		return redis.NewStringResult("", f.fail)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.fail != nil {
		return redis.NewStatusResult("", f.fail)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.fail != nil {
		return redis.NewIntResult(0, f.fail)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.fail)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedisCache(fake, "")

	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok := fake.data[DefaultRedisPrefix+"k"]; !ok {
		t.Errorf("key not stored under prefix %q: %v", DefaultRedisPrefix, fake.data)
	}
	if fake.ttls[DefaultRedisPrefix+"k"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttls[DefaultRedisPrefix+"k"])
	}

	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v" {
		t.Errorf("Get() = %q, %v, %v; want v hit", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get() hit after Delete")
	}

	if err := c.Close(); err != nil || !fake.closed {
		t.Errorf("Close() = %v, closed %v", err, fake.closed)
	}
}

func TestRedisCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.fail = errors.New("connection refused")
	c := newRedisCache(fake, "site:")

	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get() error = %v, want ErrUnavailable", err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Set() error = %v, want ErrUnavailable", err)
	}
	if err := c.Delete(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Delete() error = %v, want ErrUnavailable", err)
	}
}

func TestRedisConfigOptions(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RedisConfig
		wantAddr string
		wantDB   int
		wantErr  bool
	}{
		{"addr", RedisConfig{Addr: "localhost:6379", DB: 2}, "localhost:6379", 2, false},
		{"url wins", RedisConfig{URL: "redis://cache.internal:6380/3", Addr: "ignored:1"}, "cache.internal:6380", 3, false},
		{"bad url", RedisConfig{URL: "http://nope"}, "", 0, true},
		{"nothing", RedisConfig{}, "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.cfg.options()
			if (err != nil) != tt.wantErr {
				t.Fatalf("options() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if opts.Addr != tt.wantAddr || opts.DB != tt.wantDB {
				t.Errorf("options() = %s db %d, want %s db %d", opts.Addr, opts.DB, tt.wantAddr, tt.wantDB)
			}
		})
	}
}
