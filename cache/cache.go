package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var Client *redis.Client

func Init(addr string, db int) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return Client.Ping(context.Background()).Err()
}

func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}

// GetJSON loads the cached value at key into dest. Returns false on miss or
// when redis is unavailable; caching is always best-effort.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if Client == nil {
		return false
	}
	raw, err := Client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = Client.Set(ctx, key, raw, ttl).Err()
}

const wizardTTL = 30 * time.Minute

func SetWizardStep(ctx context.Context, userID int64, step string) error {
	return Client.Set(ctx, wizardKey(userID), step, wizardTTL).Err()
}

func GetWizardStep(ctx context.Context, userID int64) (string, error) {
	step, err := Client.Get(ctx, wizardKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return step, err
}

func ClearWizardStep(ctx context.Context, userID int64) error {
	return Client.Del(ctx, wizardKey(userID)).Err()
}

func wizardKey(userID int64) string {
	return fmt.Sprintf("wizard:%d:step", userID)
}

// CheckRateLimit counts hits for key within a fixed window and reports
// whether the limit is exceeded.
func CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := Client.Incr(ctx, "rate:"+key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		Client.Expire(ctx, "rate:"+key, window)
	}
	return count > int64(limit), nil
}

// RevokeToken denylists a JWT until its natural expiry.
func RevokeToken(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return Client.Set(ctx, "revoked:"+token, "1", ttl).Err()
}

func TokenRevoked(ctx context.Context, token string) bool {
	if Client == nil {
		return false
	}
	n, err := Client.Exists(ctx, "revoked:"+token).Result()
	return err == nil && n > 0
}
