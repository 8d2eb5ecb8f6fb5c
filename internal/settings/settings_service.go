package settings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	settingKeyPrefix = "settings:"
	cacheTTL         = 10 * time.Minute
)

func cacheKey(schoolID, key string) string {
	return settingKeyPrefix + schoolID + ":" + key
}

// Store is the read contract the attendance pipeline consumes. A missing key
// is (value="", ok=false), never an error.
//
//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock
type Store interface {
	Get(ctx context.Context, schoolID, key string) (string, bool, error)
}

type Service interface {
	Store
	GetConfig(ctx context.Context, schoolID string, keys []string) (map[string]string, error)
	UpdateConfig(ctx context.Context, schoolID string, values map[string]string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

type cachedSetting struct {
	Value string `json:"value"`
	Found bool   `json:"found"`
}

func (s *service) Get(ctx context.Context, schoolID, key string) (string, bool, error) {
	ck := cacheKey(schoolID, key)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, ck).Result(); err == nil {
			var c cachedSetting
			if err := json.Unmarshal([]byte(raw), &c); err == nil {
				return c.Value, c.Found, nil
			}
		}
	}

	// Singleflight keeps a herd of check-ins from hammering the same row.
	v, err, _ := s.sf.Do(ck, func() (interface{}, error) {
		value, found, err := s.repo.Find(ctx, schoolID, key)
		if err != nil {
			return nil, err
		}

		c := cachedSetting{Value: value, Found: found}
		if s.rdb != nil {
			if raw, err := json.Marshal(c); err == nil {
				s.rdb.Set(ctx, ck, raw, cacheTTL)
			}
		}

		return c, nil
	})
	if err != nil {
		return "", false, err
	}

	c := v.(cachedSetting)
	return c.Value, c.Found, nil
}

func (s *service) GetConfig(ctx context.Context, schoolID string, keys []string) (map[string]string, error) {
	rows, err := s.repo.FindAllBySchool(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}

	config := make(map[string]string)
	for _, row := range rows {
		if len(keys) == 0 || wanted[row.SettingKey] {
			config[row.SettingKey] = row.SettingValue
		}
	}
	return config, nil
}

func (s *service) UpdateConfig(ctx context.Context, schoolID string, values map[string]string) error {
	for key, value := range values {
		if err := s.repo.Upsert(ctx, schoolID, key, value); err != nil {
			return err
		}
		if s.rdb != nil {
			ck := cacheKey(schoolID, key)
			if err := s.rdb.Del(ctx, ck).Err(); err != nil {
				s.logger.Error("invalidate settings cache failed",
					zap.String("cache_key", ck),
					zap.Error(err),
				)
			}
		}
	}
	return nil
}
