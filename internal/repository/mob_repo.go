package repository

import (
	"context"
	"sync"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
)

// MobStats aggregates the accepted-video catalog for the stats endpoint.
type MobStats struct {
	PerMob        map[string]int
	Total         int
	AvgConfidence float64
}

// MobStore is the persistence seam for accepted submissions: a per-mob
// collection of denormalized video records. Append must be atomic with
// respect to concurrent requests: the collection is created if absent and
// the record added under the store's lock.
type MobStore interface {
	Append(ctx context.Context, mobID string, video model.MobVideo) error
	List(ctx context.Context, mobID string) ([]model.MobVideo, error)
	Stats(ctx context.Context) (MobStats, error)
}

// MemoryMobStore is the default demo-grade store: a mutex-guarded map. No
// durability guarantees.
type MemoryMobStore struct {
	mu     sync.RWMutex
	videos map[string][]model.MobVideo
}

func NewMemoryMobStore() *MemoryMobStore {
	return &MemoryMobStore{videos: make(map[string][]model.MobVideo)}
}

// Append adds a record to the mob's collection, creating it if absent.
// The lock is held only for the append, never across scoring.
func (s *MemoryMobStore) Append(ctx context.Context, mobID string, video model.MobVideo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.videos[mobID] = append(s.videos[mobID], video)
	return nil
}

// List returns a copy of the mob's accepted videos in insertion order.
func (s *MemoryMobStore) List(ctx context.Context, mobID string) ([]model.MobVideo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	videos := s.videos[mobID]
	out := make([]model.MobVideo, len(videos))
	copy(out, videos)
	return out, nil
}

// Stats aggregates counts and average confidence across all mobs.
func (s *MemoryMobStore) Stats(ctx context.Context) (MobStats, error) {
	if err := ctx.Err(); err != nil {
		return MobStats{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := MobStats{PerMob: make(map[string]int, len(s.videos))}
	var sum float64
	for mobID, videos := range s.videos {
		stats.PerMob[mobID] = len(videos)
		stats.Total += len(videos)
		for _, v := range videos {
			sum += v.Confidence
		}
	}
	if stats.Total > 0 {
		stats.AvgConfidence = sum / float64(stats.Total)
	}
	return stats, nil
}
