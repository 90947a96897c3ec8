package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)

	r := gin.New()
	r.GET("/", RateLimitMiddleware(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	do := func(ip string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":12345"
		r.ServeHTTP(w, req)
		return w.Code
	}

	// Le burst passe, la requête suivante est refusée
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// Chaque IP a son propre compteur
	assert.Equal(t, http.StatusOK, do("10.0.0.2"))
}

func TestIPRateLimiterConcurrentAccess(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(100), 100)

	// Accès concurrents sur la même IP pendant que cleanupLoop tourne
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				limiter.getLimiter("10.0.0.1").Allow()
			}
		}()
	}
	wg.Wait()

	v, ok := limiter.ips.Load("10.0.0.1")
	assert.True(t, ok)
	c := v.(*client)
	assert.InDelta(t, time.Now().UnixNano(), c.lastSeen.Load(), float64(5*time.Second))
}
