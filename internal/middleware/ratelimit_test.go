package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter_PerIP(t *testing.T) {
	rl := NewRateLimiter(rate.Every(time.Minute), 2)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	call := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/auth/confirmation?confirmation_token=123456", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	// порт не влияет: bucket общий для IP
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1002"))

	// у другого IP свой bucket
	assert.Equal(t, http.StatusOK, call("10.0.0.2:1000"))

	// через минуту bucket пополняется на один токен
	now = now.Add(time.Minute)
	assert.Equal(t, http.StatusOK, call("10.0.0.1:1003"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1004"))
}

func TestRateLimiter_SweepsIdleEntries(t *testing.T) {
	rl := NewRateLimiter(rate.Limit(1), 1)
	now := time.Now()
	rl.now = func() time.Time { return now }

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")
	assert.Len(t, rl.limiters, 2)

	now = now.Add(limiterIdle + time.Minute)
	rl.allow("10.0.0.3")
	assert.Len(t, rl.limiters, 1)
}
