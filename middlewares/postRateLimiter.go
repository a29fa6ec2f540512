package middlewares

import (
	"net/http"
	"os"
	"time"

	"civiclens-be/config"

	"github.com/gin-gonic/gin"
)

// PostRateLimiter caps how many posts a user may create per day, tracked as
// a per-user Redis counter with a 24h TTL.
func PostRateLimiter(limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(CtxExternalID)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			c.Abort()
			return
		}

		ctx := config.Ctx
		queuePrefix := os.Getenv("REDIS_QUEUE_FOR_POST_LIMIT")
		if queuePrefix == "" {
			queuePrefix = "post_limit"
		}

		userKey := queuePrefix + ":" + userID

		count, err := config.RedisClient.Incr(ctx, userKey).Result()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error incrementing count"})
			c.Abort()
			return
		}

		// TTL starts on the first post of the window
		if count == 1 {
			err = config.RedisClient.Expire(ctx, userKey, 24*time.Hour).Err()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "redis error setting TTL"})
				c.Abort()
				return
			}
		}

		if count > int64(limit) {
			retryAfter, _ := config.RedisClient.TTL(ctx, userKey).Result()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": retryAfter.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
