package cache

import (
	"context"
	"encoding/json"
	"stream-anomaly-processor/models"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient(addr string) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "", // без пароля
		DB:           0,  // используем DB по умолчанию
		PoolSize:     50, // Увеличенный пул соединений
		MinIdleConns: 10, // Минимальное количество idle соединений
		MaxRetries:   3,  // Количество попыток при ошибке
	})

	ctx := context.Background()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{
		client: rdb,
		ctx:    ctx,
	}, nil
}

func (rc *RedisClient) Close() error {
	return rc.client.Close()
}

func (rc *RedisClient) SaveResult(streamID string, result models.StreamResult) error {
	key := "stream:" + streamID

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return rc.client.Set(rc.ctx, key, data, 5*time.Minute).Err()
}

func (rc *RedisClient) GetResult(streamID string) (*models.StreamResult, error) {
	key := "stream:" + streamID

	val, err := rc.client.Get(rc.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil // Результат не найден
	}
	if err != nil {
		return nil, err
	}

	var result models.StreamResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
