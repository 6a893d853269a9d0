package cli

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/opentdb"
	rediscache "trivia-quiz/internal/infra/redis"
)

// buildService wires the HTTP source behind the configured cache. The returned
// func releases the Redis client when one was opened.
func buildService(ctx context.Context, cfg config.Config) (*app.QuizService, func()) {
	client := opentdb.NewClient(cfg.API.BaseURL, config.TTLDuration(cfg.API.Timeout, 10*time.Second))

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := rdb.Ping(pingCtx).Err()
		if err == nil {
			ttl := config.TTLDuration(cfg.Redis.TTL, 6*time.Hour)
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("using redis cache")
			return app.NewQuizService(rediscache.NewSourceCache(rdb, client, ttl)), func() { _ = rdb.Close() }
		}
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, falling back to memory cache")
		_ = rdb.Close()
	}

	ttl := config.TTLDuration(cfg.Cache.TTL, time.Hour)
	return app.NewQuizService(memory.NewSourceCache(client, ttl)), func() {}
}
