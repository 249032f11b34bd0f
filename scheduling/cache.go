package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache keeps available-slot responses in redis for a short TTL. Every
// booking mutation for a (doctor, date) pair invalidates its key, so a hit is
// never staler than the last mutation. A nil client disables the cache.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &SlotCache{client: client, ttl: ttl}
}

func slotKey(doctorID, date string) string {
	return fmt.Sprintf("slots:%s:%s", doctorID, date)
}

func (c *SlotCache) Get(ctx context.Context, doctorID, date string) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, slotKey(doctorID, date)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, doctorID, date string, slots []string) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, slotKey(doctorID, date), raw, c.ttl).Err(); err != nil {
		log.Println("slot cache set failed:", err)
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, doctorID, date string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, slotKey(doctorID, date)).Err(); err != nil {
		log.Println("slot cache invalidate failed:", err)
	}
}
