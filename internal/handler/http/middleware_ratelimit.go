// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/zonesync/internal/app"
	"github.com/MKhiriev/zonesync/internal/logger"
	"github.com/MKhiriev/zonesync/internal/utils"
)

// rateLimiter hands out one token-bucket limiter per authenticated user.
// Runs after the auth middleware, so the user ID is always in the context.
type rateLimiter struct {
	mu       sync.Mutex
	limiters map[int64]*rate.Limiter

	rps   rate.Limit
	burst int
}

func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: make(map[int64]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (l *rateLimiter) limiterFor(userID int64) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(l.rps, l.burst)
		l.limiters[userID] = limiter
	}
	return limiter
}

// rateLimit rejects requests above the per-user budget with 429 and a
// Retry-After header carrying the wait in whole seconds.
func (h *Handler) rateLimit(limiter *rateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			userID, found := utils.GetUserIDFromContext(r.Context())
			if !found {
				log.Error().Str("func", "*Handler.rateLimit").Msg("no user ID in request context")
				http.Error(w, app.MsgNoUserIDProvided, http.StatusUnauthorized)
				return
			}

			reservation := limiter.limiterFor(userID).Reserve()
			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()
				retryAfter := int(math.Ceil(delay.Seconds()))

				log.Warn().Str("func", "*Handler.rateLimit").
					Int64("user_id", userID).
					Int("retry_after", retryAfter).
					Msg("request budget exhausted")

				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, app.MsgRateLimited, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
