package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// RankingKey is the Redis sorted set holding the live all-time points ranking.
	RankingKey = "fittrack:ranking"

	// PointsKey is the Redis hash of username -> current total points.
	PointsKey = "fittrack:points"

	// VersionKey tracks a global ranking version for cheap change detection;
	// the websocket hub polls it and clients refetch only when it moves.
	VersionKey = "fittrack:version"

	// timestampDivisor keeps the timestamp component of a composite score far
	// below one point so it only breaks ties.
	timestampDivisor = 10_000_000_000
)

// RedisRepository maintains the live ranking mirror of user total points.
// It is best-effort: the Postgres store stays the source of truth.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

// compositeScore folds a nanosecond timestamp into the score so that of two
// users on the same points the one who got there first ranks higher.
func compositeScore(points int, timestamp int64) float64 {
	return float64(points) + (1.0 - float64(timestamp)/timestampDivisor)
}

// UpdatePoints writes a user's total into the sorted set and hash, and bumps
// the version counter, in one pipeline.
func (r *RedisRepository) UpdatePoints(ctx context.Context, username string, points int) error {
	score := compositeScore(points, time.Now().UnixNano())

	pipe := r.client.Pipeline()
	pipe.ZAdd(ctx, RankingKey, redis.Z{Score: score, Member: username})
	pipe.HSet(ctx, PointsKey, username, points)
	pipe.Incr(ctx, VersionKey)
	_, err := pipe.Exec(ctx)
	return err
}

// GetUserPoints reads a user's mirrored total from the points hash.
func (r *RedisRepository) GetUserPoints(ctx context.Context, username string) (int, error) {
	raw, err := r.client.HGet(ctx, PointsKey, username).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrNotFound
		}
		return 0, err
	}
	points, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid points format: %w", err)
	}
	return points, nil
}

// GetUserRank returns the user's 1-indexed position in the live ranking.
func (r *RedisRepository) GetUserRank(ctx context.Context, username string) (int, error) {
	score, err := r.client.ZScore(ctx, RankingKey, username).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, ErrNotFound
		}
		return 0, err
	}

	// Rank = users with a strictly greater composite score + 1.
	count, err := r.client.ZCount(ctx, RankingKey, fmt.Sprintf("(%f", score), "+inf").Result()
	if err != nil {
		return 0, err
	}
	return int(count) + 1, nil
}

// GetVersion returns the current ranking version counter.
func (r *RedisRepository) GetVersion(ctx context.Context) (int64, error) {
	version, err := r.client.Get(ctx, VersionKey).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

// BulkUpdatePoints mirrors many users in one pipeline, bumping the version once.
func (r *RedisRepository) BulkUpdatePoints(ctx context.Context, points map[string]int) error {
	pipe := r.client.Pipeline()
	timestamp := time.Now().UnixNano()
	for username, total := range points {
		pipe.ZAdd(ctx, RankingKey, redis.Z{
			Score:  compositeScore(total, timestamp),
			Member: username,
		})
		pipe.HSet(ctx, PointsKey, username, total)
		timestamp++
	}
	pipe.Incr(ctx, VersionKey)
	_, err := pipe.Exec(ctx)
	return err
}

// RemoveUser drops a user from the live ranking (profile deleted).
func (r *RedisRepository) RemoveUser(ctx context.Context, username string) error {
	pipe := r.client.Pipeline()
	pipe.ZRem(ctx, RankingKey, username)
	pipe.HDel(ctx, PointsKey, username)
	pipe.Incr(ctx, VersionKey)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset drops the live ranking keys. Seeder use only.
func (r *RedisRepository) Reset(ctx context.Context) error {
	return r.client.Del(ctx, RankingKey, PointsKey, VersionKey).Err()
}

// Ping checks if Redis is reachable
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
