/* ratelimit.go
 * Contains the per user limiter for the join routes
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/hlog"
	"golang.org/x/time/rate"
)

type joinLimiter struct {
	mu       sync.Mutex
	perMin   int
	limiters map[string]*rate.Limiter
}

func newJoinLimiter(perMinute int) *joinLimiter {
	return &joinLimiter{perMin: perMinute, limiters: make(map[string]*rate.Limiter)}
}

// allow reports whether userID may make another join request now
func (l *joinLimiter) allow(userID string) bool {
	if l.perMin <= 0 {
		return true
	}

	l.mu.Lock()
	limiter, ok := l.limiters[userID]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.perMin)), l.perMin)
		l.limiters[userID] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// LimitJoins answers 429 once the caller exhausted its join budget. Must run after Authenticate
func (s *Server) LimitJoins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if !s.limiter.allow(user.UserID) {
			hlog.FromRequest(r).Warn().Str("user", user.UserID).Msg("join rate limit exceeded")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many join requests, slow down"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
