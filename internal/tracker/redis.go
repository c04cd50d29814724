package tracker

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultTimeToLive is how long refs of a run are kept by redis tracker
const DefaultTimeToLive = 7 * 24 * time.Hour

const runsKey = "dataverse:runs"

type redisTracker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisTracker builds Tracker keeping refs in redis list per run
func NewRedisTracker(client *redis.Client, ttl time.Duration) Tracker {
	if ttl <= 0 {
		ttl = DefaultTimeToLive
	}
	return &redisTracker{client: client, ttl: ttl}
}

func (r *redisTracker) Track(ctx context.Context, runID string, ref Ref) error {
	encoded, err := msgpack.Marshal(&ref)
	if err != nil {
		return fmt.Errorf("failed to encode ref - %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, r.key(runID), encoded)
		pipe.Expire(ctx, r.key(runID), r.ttl)
		pipe.SAdd(ctx, runsKey, runID)
		pipe.Expire(ctx, runsKey, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to track %s %s of run %s - %w", ref.Kind, ref.ID, runID, err)
	}
	return nil
}

func (r *redisTracker) Refs(ctx context.Context, runID string) ([]Ref, error) {
	res, err := r.client.LRange(ctx, r.key(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read refs of run %s - %w", runID, err)
	}

	refs := make([]Ref, 0, len(res))
	for _, raw := range res {
		var ref Ref
		if err := msgpack.Unmarshal([]byte(raw), &ref); err != nil {
			return nil, fmt.Errorf("failed to decode ref of run %s - %w", runID, err)
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func (r *redisTracker) Forget(ctx context.Context, runID string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(runID))
		pipe.SRem(ctx, runsKey, runID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to forget run %s - %w", runID, err)
	}
	return nil
}

func (r *redisTracker) Runs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, runsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read runs - %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *redisTracker) key(runID string) string {
	return fmt.Sprintf("dataverse:run:%s:refs", runID)
}
