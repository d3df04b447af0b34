package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// SetCode stores a short-lived verification or password-reset code for a user.
func SetCode(kind string, userID uint, code string, ttl time.Duration) error {
	return Client.Set(Ctx, fmt.Sprintf("%s:%d", kind, userID), code, ttl).Err()
}

// GetCode fetches a previously issued code. Returns "" when expired or absent.
func GetCode(kind string, userID uint) string {
	val, err := Client.Get(Ctx, fmt.Sprintf("%s:%d", kind, userID)).Result()
	if err != nil {
		return ""
	}
	return val
}

// DeleteCode removes a consumed code.
func DeleteCode(kind string, userID uint) {
	Client.Del(Ctx, fmt.Sprintf("%s:%d", kind, userID))
}
