package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JamesMcDaniel04/Twelve-labs-demo/internal/model"
)

// PostgresMobStore persists accepted videos in Postgres. Enabled when
// DATABASE_URL is configured; per-mob append atomicity comes from the
// database rather than an in-process lock.
type PostgresMobStore struct {
	pool *pgxpool.Pool
}

func NewPostgresMobStore(pool *pgxpool.Pool) *PostgresMobStore {
	return &PostgresMobStore{pool: pool}
}

func (s *PostgresMobStore) Append(ctx context.Context, mobID string, video model.MobVideo) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO mob_videos (id, mob_id, title, submitter, duration, confidence, added_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		video.ID, mobID, video.Title, video.Submitter, video.Duration, video.Confidence, video.AddedAt)
	return err
}

func (s *PostgresMobStore) List(ctx context.Context, mobID string) ([]model.MobVideo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, submitter, duration, confidence, added_at
		FROM mob_videos
		WHERE mob_id = $1
		ORDER BY added_at`,
		mobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []model.MobVideo
	for rows.Next() {
		var v model.MobVideo
		if err := rows.Scan(&v.ID, &v.Title, &v.Submitter, &v.Duration, &v.Confidence, &v.AddedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (s *PostgresMobStore) Stats(ctx context.Context) (MobStats, error) {
	stats := MobStats{PerMob: make(map[string]int)}

	rows, err := s.pool.Query(ctx, `
		SELECT mob_id, COUNT(*), COALESCE(AVG(confidence), 0)
		FROM mob_videos
		GROUP BY mob_id`)
	if err != nil {
		return MobStats{}, err
	}
	defer rows.Close()

	var weightedSum float64
	for rows.Next() {
		var (
			mobID string
			count int
			avg   float64
		)
		if err := rows.Scan(&mobID, &count, &avg); err != nil {
			return MobStats{}, err
		}
		stats.PerMob[mobID] = count
		stats.Total += count
		weightedSum += avg * float64(count)
	}
	if err := rows.Err(); err != nil {
		return MobStats{}, err
	}

	if stats.Total > 0 {
		stats.AvgConfidence = weightedSum / float64(stats.Total)
	}
	return stats, nil
}
