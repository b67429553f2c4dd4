package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/gfranco93/bolsa-monitor/config"
	"github.com/gfranco93/bolsa-monitor/internal/model"
	"github.com/gfranco93/bolsa-monitor/utils"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "snapshot:latest"

var ErrCacheMiss = errors.New("cache miss")

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func (r *RedisCache) SetSnapshot(ctx context.Context, snapshot model.Snapshot) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetSnapshot start", slog.String("rqID", rqID))

	snapshotJson, err := json.Marshal(snapshot)
	if err != nil {
		slog.Error("can't marshall snapshot in SetSnapshot", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall snapshot")
	}

	_, err = r.redis.Set(ctx, snapshotKey, snapshotJson, r.cfg.Cache.SnapshotExpiration).Result()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetSnapshot completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) GetSnapshot(ctx context.Context) (model.Snapshot, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetSnapshot start", slog.String("rqID", rqID))

	res, err := r.redis.Get(ctx, snapshotKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return nil, err
	}

	snapshot := model.Snapshot{}
	err = json.Unmarshal([]byte(res), &snapshot)
	if err != nil {
		slog.Error(
			"can't unmarshall snapshot in GetSnapshot",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
		)
		return nil, errors.New("can't unmarshall snapshot")
	}

	slog.Debug("GetSnapshot finished", slog.String("rqID", rqID))

	return snapshot, nil
}
