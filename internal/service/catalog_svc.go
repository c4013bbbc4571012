package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/repository"
	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/taxonomy"
)

// CatalogService serves the read side of the mob catalog: per-mob listings
// and the global stats rollup, cache-aside over the store.
type CatalogService struct {
	store repository.MobStore
	cache *CacheService
}

func NewCatalogService(store repository.MobStore, cache *CacheService) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

// ListMobs returns every mob definition with its current video count.
// Uncached: the taxonomy is static and counts come from one store call.
func (c *CatalogService) ListMobs(ctx context.Context) ([]model.MobResponse, error) {
	stats, err := c.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	out := make([]model.MobResponse, 0, len(taxonomy.Mobs))
	for _, mob := range taxonomy.Mobs {
		out = append(out, model.MobResponse{
			MobID:       mob.ID,
			Name:        mob.Name,
			Description: mob.Description,
			Icon:        mob.Icon,
			Color:       mob.Color,
			Videos:      []model.MobVideo{},
			VideoCount:  stats.PerMob[mob.ID],
		})
	}
	return out, nil
}

// Mob returns one mob's listing as marshaled JSON, served from cache when
// fresh. Unknown mob IDs are input errors.
func (c *CatalogService) Mob(ctx context.Context, mobID string) ([]byte, error) {
	mob := taxonomy.ByID(mobID)
	if mob == nil {
		return nil, fmt.Errorf("%w: unknown mob %q", ErrInput, mobID)
	}

	if cached, err := c.cache.GetMob(ctx, mobID); err != nil {
		log.Warn().Err(err).Str("mob_id", mobID).Msg("mob cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	videos, err := c.store.List(ctx, mobID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	resp := model.MobResponse{
		MobID:         mob.ID,
		Name:          mob.Name,
		Description:   mob.Description,
		Icon:          mob.Icon,
		Color:         mob.Color,
		Videos:        videos,
		VideoCount:    len(videos),
		AvgConfidence: averageConfidence(videos),
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetMob(ctx, mobID, resp); err != nil {
		log.Warn().Err(err).Str("mob_id", mobID).Msg("mob cache write failed")
	}
	return data, nil
}

// Stats returns the global rollup as marshaled JSON. totalAnalyzed counts
// every validation attempt since startup, accepted or not.
func (c *CatalogService) Stats(ctx context.Context, totalAnalyzed int64) ([]byte, error) {
	if cached, err := c.cache.GetStats(ctx); err != nil {
		log.Warn().Err(err).Msg("stats cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	stats, err := c.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	distribution := make(map[string]int, len(taxonomy.Mobs))
	for _, mob := range taxonomy.Mobs {
		distribution[mob.ID] = stats.PerMob[mob.ID]
	}

	resp := model.StatsResponse{
		TotalAnalyzed:   int(totalAnalyzed),
		TotalAccepted:   stats.Total,
		MobDistribution: distribution,
		AvgConfidence:   roundTo(stats.AvgConfidence, 3),
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return nil, err
	}

	if err := c.cache.SetStats(ctx, resp); err != nil {
		log.Warn().Err(err).Msg("stats cache write failed")
	}
	return data, nil
}

func averageConfidence(videos []model.MobVideo) float64 {
	if len(videos) == 0 {
		return 0
	}
	var sum float64
	for _, v := range videos {
		sum += v.Confidence
	}
	return roundTo(sum/float64(len(videos)), 3)
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
