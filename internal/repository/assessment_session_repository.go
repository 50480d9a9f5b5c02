package repository

import (
	"context"
	"encoding/json"
	"time"

	"aeducacao_backend/internal/assessment"
	"aeducacao_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

const assessmentKeyPrefix = "assessment:session:"

// AssessmentSessionRepository 评估会话存Redis，按会话ID取回后继续推进
type AssessmentSessionRepository struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewAssessmentSessionRepository(rdb *redis.Client, ttl time.Duration) *AssessmentSessionRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AssessmentSessionRepository{Redis: rdb, TTL: ttl}
}

func (r *AssessmentSessionRepository) Save(ctx context.Context, sessionID string, flow *assessment.Flow) error {
	data, err := json.Marshal(flow)
	if err != nil {
		return err
	}
	return r.Redis.Set(ctx, assessmentKeyPrefix+sessionID, data, r.TTL).Err()
}

func (r *AssessmentSessionRepository) Find(ctx context.Context, sessionID string) (*assessment.Flow, error) {
	val, err := r.Redis.Get(ctx, assessmentKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var flow assessment.Flow
	if err := json.Unmarshal([]byte(val), &flow); err != nil {
		return nil, err
	}
	return &flow, nil
}

func (r *AssessmentSessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.Redis.Del(ctx, assessmentKeyPrefix+sessionID).Err()
}
