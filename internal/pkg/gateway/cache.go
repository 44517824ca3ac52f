package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelapp/flight-booking-client/internal/app/dto"
)

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// SearchCache is a transparent read-through cache for search responses.
// Only search results are cached; flight and booking lookups always hit
// the network so each stage sees authoritative data.
type SearchCache struct {
	redis RedisClient
}

func NewSearchCache(redis RedisClient) *SearchCache {
	return &SearchCache{
		redis: redis,
	}
}

func (c *SearchCache) Key(req dto.SearchCriteria) string {
	return fmt.Sprintf("search:cache:%s:%s:%s:%d",
		req.DepartureDate, req.Origin, req.Destination, req.Passengers)
}

func (c *SearchCache) Get(ctx context.Context, key string) ([]dto.Flight, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var flights []dto.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}

	return flights, nil
}

func (c *SearchCache) Set(ctx context.Context,
	key string,
	flights []dto.Flight,
	expiration time.Duration,
) error {
	data, err := json.Marshal(flights)
	if err != nil {
		return fmt.Errorf("failed to marshal flights: %w", err)
	}

	if err := c.redis.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set flights: %w", err)
	}

	return nil
}
