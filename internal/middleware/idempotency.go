package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

// Idempotency guards POST endpoints against duplicate submissions. A cached
// response is replayed as-is; a concurrent in-flight duplicate is rejected
// with 409 via a short-lived SetNX lock.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// Lock expires on its own so a crashed worker never wedges the key.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok": false,
				"error": gin.H{
					"code":    "PROCESSING",
					"message": "a request with this idempotency key is already in progress",
				},
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// ReleaseIdempotencyLock drops the in-flight lock taken by Idempotency so a
// failed request can be retried immediately instead of waiting out the lock
// TTL. Handlers defer this at the top of every guarded POST.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		rdb.Del(c.Request.Context(), lockKey)
	}
}

// CacheIdempotentResponse stores a successful response body under the
// request's idempotency key so a retry replays it instead of re-executing
// the operation.
func CacheIdempotentResponse(c *gin.Context, rdb *redis.Client, resp any) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyCacheTTL).Err()
	}
}
