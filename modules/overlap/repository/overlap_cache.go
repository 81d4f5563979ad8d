package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"planwise-api/core/cache"
	"planwise-api/core/constants"
	"planwise-api/modules/overlap/dto"

	"github.com/google/uuid"
)

// OverlapCache stores computed overlaps under a per-group generation. A
// change to the group bumps the generation, so entries written for an older
// generation are never read again and simply expire.
type OverlapCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewOverlapCache(c cache.Cache, ttl time.Duration) *OverlapCache {
	return &OverlapCache{cache: c, ttl: ttl}
}

type OverlapCacheInterface interface {
	Generation(ctx context.Context, groupID uuid.UUID) (int64, error)
	Bump(ctx context.Context, groupID uuid.UUID) (int64, error)
	Load(ctx context.Context, groupID uuid.UUID, generation int64) (*dto.OverlapResponse, error)
	Store(ctx context.Context, groupID uuid.UUID, generation int64, overlap *dto.OverlapResponse) error
	Drop(ctx context.Context, groupID uuid.UUID) error
}

func generationKey(groupID uuid.UUID) string {
	return constants.RedisKeyOverlapGeneration + groupID.String()
}

func overlapKey(groupID uuid.UUID, generation int64) string {
	return fmt.Sprintf("%s%s:%d", constants.RedisKeyOverlap, groupID, generation)
}

// Generation returns 0 for a group that has never been bumped.
func (c *OverlapCache) Generation(ctx context.Context, groupID uuid.UUID) (int64, error) {
	raw, ok, err := c.cache.Get(ctx, generationKey(groupID))
	if err != nil || !ok {
		return 0, err
	}
	gen, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing overlap generation %q: %w", raw, err)
	}
	return gen, nil
}

func (c *OverlapCache) Bump(ctx context.Context, groupID uuid.UUID) (int64, error) {
	return c.cache.Incr(ctx, generationKey(groupID))
}

// Load returns nil without error on a miss.
func (c *OverlapCache) Load(ctx context.Context, groupID uuid.UUID, generation int64) (*dto.OverlapResponse, error) {
	raw, ok, err := c.cache.Get(ctx, overlapKey(groupID, generation))
	if err != nil || !ok {
		return nil, err
	}

	var overlap dto.OverlapResponse
	if err := json.Unmarshal([]byte(raw), &overlap); err != nil {
		return nil, fmt.Errorf("decoding cached overlap: %w", err)
	}
	return &overlap, nil
}

func (c *OverlapCache) Store(ctx context.Context, groupID uuid.UUID, generation int64, overlap *dto.OverlapResponse) error {
	data, err := json.Marshal(overlap)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, overlapKey(groupID, generation), string(data), c.ttl)
}

// Drop deletes the entry for the current generation. Used when a bump
// fails, so the pre-change overlap is not served until its TTL.
func (c *OverlapCache) Drop(ctx context.Context, groupID uuid.UUID) error {
	gen, err := c.Generation(ctx, groupID)
	if err != nil {
		return err
	}
	return c.cache.Delete(ctx, overlapKey(groupID, gen))
}
