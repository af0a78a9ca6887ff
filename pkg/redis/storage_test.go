package redis_test

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/cookiesync/pkg/kv"
	"github.com/dmitrymomot/cookiesync/pkg/redis"
)

func TestStorage_EmptyKey(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	st := redis.NewStorageFromConfig(client, redis.Config{KeyPrefix: "test:"})
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	_, err := st.Get(ctx, "")
	assert.ErrorIs(t, err, kv.ErrEmptyKey)
	assert.ErrorIs(t, st.Set(ctx, "", []byte("x")), kv.ErrEmptyKey)
	assert.ErrorIs(t, st.Delete(ctx, ""), kv.ErrEmptyKey)
	assert.Same(t, client, st.Conn())
}
