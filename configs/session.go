package configs

import (
	"context"
	"errors"
	"time"

	"kartvizit.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "kartvizit:sess:"

var sessionStore *session.Store

// redisStorage fiber.Storage arayüzünü go-redis üzerinden uygular.
type redisStorage struct {
	client *redis.Client
}

func (s *redisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.client.Get(context.Background(), sessionKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *redisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	return s.client.Set(context.Background(), sessionKeyPrefix+key, val, exp).Err()
}

func (s *redisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	return s.client.Del(context.Background(), sessionKeyPrefix+key).Err()
}

func (s *redisStorage) Reset() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (s *redisStorage) Close() error {
	return s.client.Close()
}

var _ fiber.Storage = (*redisStorage)(nil)

// SetupSession session store'u bir kez oluşturur. REDIS_ADDR tanımlıysa oturumlar
// Redis'te, değilse bellekte tutulur.
func SetupSession() *session.Store {
	if sessionStore != nil {
		return sessionStore
	}
	cfg := App()

	sessCfg := session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:kartvizit_session",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: "Lax",
	}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			configslog.Log.Warn("Redis'e ulaşılamadı, oturumlar bellekte tutulacak", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			_ = client.Close()
		} else {
			sessCfg.Storage = &redisStorage{client: client}
			configslog.SLog.Infof("Oturum deposu: redis (%s)", cfg.RedisAddr)
		}
	}

	sessionStore = session.New(sessCfg)
	return sessionStore
}

// CloseSession session deposunu kapatır (Redis bağlantısı dahil).
func CloseSession() error {
	if sessionStore == nil || sessionStore.Storage == nil {
		return nil
	}
	return sessionStore.Storage.Close()
}
