package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/proposal-backend/internal/logger"
)

// RateLimitMiddleware ограничивает количество запросов с одного IP.
// По умолчанию: 10 запросов в минуту. prefix разделяет счётчики разных групп маршрутов.
func RateLimitMiddleware(prefix string, limit int64, period time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = 1 * time.Minute
	}

	rate := limiter.Rate{
		Period: period,
		Limit:  limit,
	}
	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          prefix,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	})
	instance := limiter.New(store, rate)

	return func(c *gin.Context) {
		key := c.ClientIP()
		lctx, err := instance.Get(c, key)
		if err != nil {
			logger.WithComponent("rate_limit").WithError(err).Error("ошибка хранилища лимитов")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(lctx.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(lctx.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(lctx.Reset, 10))

		if lctx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Muitas requisições, tente novamente mais tarde.",
			})
			return
		}

		c.Next()
	}
}
