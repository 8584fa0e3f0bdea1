package kvstore

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis stores each key as a JSON string.
type Redis struct {
	conn *redis.Client
}

// NewRedis builds the client from REDIS_URL and REDIS_PASSWORD.
func NewRedis() *Redis {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"), // Empty if no password
		DB:       0,                           // Default DB
	})
	return &Redis{conn: conn}
}

func (r *Redis) Get(ctx context.Context, key string, out any) bool {
	raw, err := r.conn.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("kvstore: redis get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("kvstore: redis get %s: corrupt payload: %v", key, err)
		return false
	}
	return true
}

func (r *Redis) Set(ctx context.Context, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("kvstore: redis set %s: %v", key, err)
		return false
	}
	if err := r.conn.Set(ctx, key, raw, 0).Err(); err != nil {
		log.Printf("kvstore: redis set %s: %v", key, err)
		return false
	}
	return true
}
