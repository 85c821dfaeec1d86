package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fadecall/booking-api/internal/schedule"
)

const slotTTL = 60 * time.Second

// SlotCache keeps computed slot grids for a short window. Keys carry a
// per-barber version counter; invalidation bumps the counter so stale
// entries just expire. A nil *SlotCache disables caching entirely.
type SlotCache struct {
	rdb *redis.Client
}

func NewSlotCache(addr string) *SlotCache {
	if addr == "" {
		return nil
	}
	return &SlotCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *SlotCache) key(ctx context.Context, barberID, serviceID uint, date string) string {
	ver, _ := c.rdb.Get(ctx, fmt.Sprintf("slots:ver:%d", barberID)).Int64()
	return fmt.Sprintf("slots:%d:%d:%d:%s", barberID, ver, serviceID, date)
}

func (c *SlotCache) Get(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date string,
) ([]schedule.TimeSlot, bool) {

	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(ctx, barberID, serviceID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []schedule.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *SlotCache) Set(
	ctx context.Context,
	barberID uint,
	serviceID uint,
	date string,
	slots []schedule.TimeSlot,
) {

	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, c.key(ctx, barberID, serviceID, date), raw, slotTTL)
}

// Invalidate drops every cached grid for the barber. Called on booking
// and availability mutations; failures are ignored, the TTL bounds
// staleness anyway.
func (c *SlotCache) Invalidate(ctx context.Context, barberID uint) {
	if c == nil {
		return
	}
	c.rdb.Incr(ctx, fmt.Sprintf("slots:ver:%d", barberID))
}
