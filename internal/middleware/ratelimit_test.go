package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimit_AllowsNormalRequests(t *testing.T) {
	rl := NewRateLimiter(10, 10) // 10 rps, burst 10

	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// First login attempt should pass
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRateLimit_BlocksExcessiveRequests(t *testing.T) {
	rl := NewRateLimiter(1, 2) // 1 rps, burst 2

	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Hammer the login route past its burst, last attempt should be blocked
	var lastCode int
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after burst exceeded, got %d", http.StatusTooManyRequests, lastCode)
	}
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	rl := NewRateLimiter(1, 1) // 1 rps, burst 1

	router := gin.New()
	router.Use(rl.Middleware())
	router.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// First IP uses its burst
	w1 := httptest.NewRecorder()
	req1, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req1.RemoteAddr = "10.0.0.1:12345"
	router.ServeHTTP(w1, req1)

	if w1.Code != http.StatusOK {
		t.Errorf("IP1 first request: expected %d, got %d", http.StatusOK, w1.Code)
	}

	// Second IP should still have its own burst
	w2 := httptest.NewRecorder()
	req2, _ := http.NewRequest("POST", "/api/auth/login", nil)
	req2.RemoteAddr = "10.0.0.2:12345"
	router.ServeHTTP(w2, req2)

	if w2.Code != http.StatusOK {
		t.Errorf("IP2 first request: expected %d, got %d", http.StatusOK, w2.Code)
	}
}
