package memory

import (
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/quillnotes/reflect-api/internal/domain"
)

// cacheHighWater is the entry count beyond which Put sweeps every expired
// entry in one pass. TTL plus this sweep bounds memory; no LRU needed
// because the key space is bounded by unique journal entries.
const cacheHighWater = 1000

type cacheEntry struct {
	response  domain.Reflection
	createdAt time.Time
	ttl       time.Duration
}

// ReflectionCache is an in-memory TTL cache of reflections keyed by
// content hash. Entries are read-only after creation and expired lazily on
// access. It is NOT persistent and only suitable for a single process.
type ReflectionCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewReflectionCache creates an empty cache. A nil clock means time.Now.
func NewReflectionCache(now func() time.Time) *ReflectionCache {
	if now == nil {
		now = time.Now
	}
	return &ReflectionCache{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

// HashContent derives the cache key for a trimmed journal entry: FNV-32a
// rendered in base36. Fast, deterministic and order-sensitive. Collisions
// are accepted as a latency/correctness trade-off; this is not a security
// boundary.
func HashContent(content string) string {
	h := fnv.New32a()
	h.Write([]byte(content))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// Get returns the cached reflection for key, expiring it lazily: an entry
// past its TTL is deleted and reported as a miss.
func (c *ReflectionCache) Get(key string) (domain.Reflection, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Reflection{}, false
	}
	if c.now().Sub(e.createdAt) > e.ttl {
		delete(c.entries, key)
		return domain.Reflection{}, false
	}
	return e.response, true
}

// Put stores a reflection under key. Once the cache grows past the
// high-water mark, every expired entry is swept out.
func (c *ReflectionCache) Put(key string, resp domain.Reflection, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		response:  resp,
		createdAt: c.now(),
		ttl:       ttl,
	}

	if len(c.entries) > cacheHighWater {
		now := c.now()
		for k, e := range c.entries {
			if now.Sub(e.createdAt) > e.ttl {
				delete(c.entries, k)
			}
		}
	}
}

// Len reports the current entry count, expired or not.
func (c *ReflectionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
