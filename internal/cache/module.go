package cache

import (
	"context"

	"go.uber.org/fx"

	"github.com/returnhelper/returnsvc/internal/config"
)

// Module wires the profile cache. Without a Redis address the noop cache is
// used and every read falls through to storage.
var Module = fx.Options(
	fx.Provide(newProfileCache),
)

type cacheParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

func newProfileCache(p cacheParams) ProfileCache {
	if p.Config.RedisAddress == "" {
		return NoopProfileCache{}
	}

	client := NewRedisProfileCache(p.Config.RedisAddress)
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}
