package odds

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda a última resposta do provedor por esporte no Redis
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func NewCache(r *redis.Client, ttl time.Duration) *Cache { return &Cache{R: r, TTL: ttl} }

func keySport(sport string) string { return "odds:sport:" + sport }

func (c *Cache) GetGames(ctx context.Context, sport string) ([]Game, bool, error) {
	b, err := c.R.Get(ctx, keySport(sport)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var games []Game
	if err := json.Unmarshal(b, &games); err != nil {
		return nil, false, err
	}
	return games, true, nil
}

func (c *Cache) SetGames(ctx context.Context, sport string, games []Game) error {
	b, err := json.Marshal(games)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keySport(sport), b, c.TTL).Err()
}
