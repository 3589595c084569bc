package leaderboard

import (
	"encoding/json"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Cache keeps per-day scoreboards in Redis so repeat reads skip Postgres.
// A nil *Cache is valid and does nothing, which lets the server run
// without Redis configured.
type Cache struct {
	pool *redis.Pool
	ttl  time.Duration
}

// NewCache builds a cache over a Redis URL.
func NewCache(redisURL string, ttl time.Duration) *Cache {
	return &Cache{
		pool: &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 4 * time.Minute,
			Dial: func() (redis.Conn, error) {
				return redis.DialURL(redisURL)
			},
		},
		ttl: ttl,
	}
}

func scoreboardKey(day string) string {
	return "scores:" + day
}

// Get returns the cached scoreboard for a day, if present. Cache errors
// read as misses; the store is the source of truth.
func (c *Cache) Get(day string) (map[string]int, bool) {
	if c == nil {
		return nil, false
	}
	conn := c.pool.Get()
	defer conn.Close()

	data, err := redis.Bytes(conn.Do("GET", scoreboardKey(day)))
	if err != nil {
		return nil, false
	}
	var scores map[string]int
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, false
	}
	return scores, true
}

// Set caches a day's scoreboard with the configured TTL. Errors are
// dropped; the next read just misses.
func (c *Cache) Set(day string, scores map[string]int) {
	if c == nil {
		return
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return
	}
	conn := c.pool.Get()
	defer conn.Close()
	conn.Do("SET", scoreboardKey(day), data, "EX", int(c.ttl.Seconds()))
}

// Invalidate drops a day's cached scoreboard after an upsert.
func (c *Cache) Invalidate(day string) {
	if c == nil {
		return
	}
	conn := c.pool.Get()
	defer conn.Close()
	conn.Do("DEL", scoreboardKey(day))
}

// Close releases the Redis pool.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.pool.Close()
}
