package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"
)

type rateWindow struct {
	hits     int
	resetsAt time.Time
}

// RateLimit caps requests per client IP over a fixed window. Expired windows
// are swept opportunistically so the map stays bounded by active clients.
// Blocked requests get a 429 with a Retry-After hint.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var (
		mu        sync.Mutex
		windows   = make(map[string]*rateWindow)
		nextSweep = time.Now().Add(per)
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientIP(r)
			now := time.Now()

			mu.Lock()
			if now.After(nextSweep) {
				for k, win := range windows {
					if now.After(win.resetsAt) {
						delete(windows, k)
					}
				}
				nextSweep = now.Add(per)
			}
			win, ok := windows[key]
			if !ok || now.After(win.resetsAt) {
				win = &rateWindow{resetsAt: now.Add(per)}
				windows[key] = win
			}
			if win.hits >= limit {
				retryAfter := int(time.Until(win.resetsAt).Seconds()) + 1
				mu.Unlock()
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			win.hits++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}
