package memory

import (
	"math"
	"sync"
	"time"
)

// Window is the trailing interval requests are counted over. Fixed: the
// configurable knob is the per-window limit, not the window itself.
const Window = time.Minute

type clientState struct {
	requests []time.Time
	lastSeen time.Time
}

// RateLimiter admits requests per client identifier using a sliding
// 60-second window. The check-then-record sequence is atomic under one
// mutex so concurrent requests cannot over-admit.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientState
	limit   int
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window per
// client. A nil clock means time.Now.
func NewRateLimiter(limit int, now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		clients: make(map[string]*clientState),
		limit:   limit,
		now:     now,
	}
}

// Admit decides whether a request from clientID may proceed. When denied
// it returns the whole seconds until the oldest counted request leaves the
// window (at least 1).
func (l *RateLimiter) Admit(clientID string) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	st, ok := l.clients[clientID]
	if !ok {
		st = &clientState{}
		l.clients[clientID] = st
	}
	st.requests = pruneBefore(st.requests, now.Add(-Window))
	st.lastSeen = now

	if len(st.requests) >= l.limit {
		oldest := st.requests[0]
		retry := int(math.Ceil(oldest.Add(Window).Sub(now).Seconds()))
		if retry < 1 {
			retry = 1
		}
		return false, retry
	}

	st.requests = append(st.requests, now)
	return true, 0
}

// Prune drops timestamps that fell out of the window for every client and
// deletes clients that are empty and idle beyond one window. Called by the
// janitor; Admit prunes its own client inline.
func (l *RateLimiter) Prune() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-Window)
	for id, st := range l.clients {
		st.requests = pruneBefore(st.requests, cutoff)
		if len(st.requests) == 0 && st.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}

// Clients reports how many identifiers currently hold state.
func (l *RateLimiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// pruneBefore removes timestamps older than cutoff. Timestamps are
// appended in order, so the survivors are a suffix.
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}
