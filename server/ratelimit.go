package server

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/juju/ratelimit"
)

// Per-client rate limiting with token buckets. Endpoints that fan out to
// external providers cost more tokens than static lookups.

type RateLimiter struct {
	clients map[string]*ratelimit.Bucket
	mu      sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*ratelimit.Bucket),
	}
}

func (rl *RateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if bucket, exists = rl.clients[clientIP]; !exists {
			// 3 tokens per second, max 600 tokens
			bucket = ratelimit.NewBucketWithRate(3, 600)
			rl.clients[clientIP] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket
}

// cleanup periodically removes clients whose buckets have refilled.
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(30 * time.Minute)
	go func() {
		for range ticker.C {
			rl.mu.Lock()
			for ip, bucket := range rl.clients {
				if bucket.Available() == bucket.Capacity() {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
}

var globalRateLimiter = NewRateLimiter()

func init() {
	globalRateLimiter.cleanup()
}

func getTokenCost(r *http.Request) int64 {
	path := r.URL.Path

	switch path {
	case "/health", "/metrics":
		return 1
	case "/api/cycle", "/api/side-effects":
		return 5
	case "/api/interactions/check", "/api/interactions/assistant":
		return 50 // fans out to RxNav
	}

	if strings.HasPrefix(path, "/api/triage") {
		return 100 // RxNav + OpenFDA + embeddings + LLM
	}

	return 20
}

// RateLimitHandler enforces per-IP token bucket limits.
func RateLimitHandler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bucket := globalRateLimiter.getBucket(r.RemoteAddr)
		tokenCost := getTokenCost(r)

		w.Header().Set("X-RateLimit-Limit", "600")
		w.Header().Set("X-RateLimit-Rate", "3")

		if bucket.TakeAvailable(tokenCost) < tokenCost {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(bucket.Available(), 10))
		h.ServeHTTP(w, r)
	})
}
