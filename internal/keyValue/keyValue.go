// Package keyValue is a small expiring key/value layer. Self-contained
// deployments run on an in-process map, everything else goes to redis. It
// backs the user-exists cache and the one-shot pending invite slot.
package keyValue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type value struct {
	value   string
	expires time.Time
}

var mutex sync.Mutex
var hashmap = make(map[string]value)

var sugar *zap.SugaredLogger
var redisClient *redis.Client
var redisCtx = context.Background()
var selfContained = true

func Setup(_sugar *zap.SugaredLogger, _redisClient *redis.Client, _selfContained bool) {
	sugar = _sugar
	redisClient = _redisClient
	selfContained = _selfContained

	if selfContained {
		go expireLocalKeys()
	}
}

func expireLocalKeys() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		mutex.Lock()
		for key, v := range hashmap {
			if v.expires.Before(time.Now()) {
				delete(hashmap, key)
			}
		}
		mutex.Unlock()
	}
}

func Get(key string) (string, error) {
	if selfContained {
		mutex.Lock()
		defer mutex.Unlock()

		v := hashmap[key]
		if !v.expires.IsZero() && v.expires.Before(time.Now()) {
			delete(hashmap, key)
			return "", nil
		}

		return v.value, nil
	}

	result, err := redisClient.Get(redisCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return result, nil
}

// GetDel reads and removes a key in one step. Callers use it for values that
// must be consumed exactly once, like the pending invite code.
func GetDel(key string) (string, error) {
	if selfContained {
		mutex.Lock()
		defer mutex.Unlock()

		v := hashmap[key]
		delete(hashmap, key)

		if !v.expires.IsZero() && v.expires.Before(time.Now()) {
			return "", nil
		}

		return v.value, nil
	}

	result, err := redisClient.GetDel(redisCtx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return result, nil
}

func Set(key string, val string, expires time.Duration) error {
	sugar.Debugf("Setting key [%s]", key)

	if selfContained {
		mutex.Lock()
		defer mutex.Unlock()

		hashmap[key] = value{val, time.Now().Add(expires)}
		return nil
	}

	_, err := redisClient.Set(redisCtx, key, val, expires).Result()
	return err
}
