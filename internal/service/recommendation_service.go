package service

import (
	"context"
	"strings"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/internal/util"
)

// 没有任何用户信号时使用的通用推荐查询
const genericRecommendationQuery = "aprendizagem adaptativa"

// Recommendations GET /api/recommendations/{userId} 的响应体
type Recommendations struct {
	Success         bool                   `json:"success"`
	UserID          string                 `json:"user_id"`
	IsPersonalized  bool                   `json:"is_personalized"`
	Recommendations []model.RelatedContent `json:"recommendations"`
	UserLevel       string                 `json:"user_level,omitempty"`
	PreferredFormat string                 `json:"preferred_format,omitempty"`
}

// RecommendationService 个性化内容推荐：优先用最近的查询组合检索，
// 其次用档案里的兴趣，都没有时退回通用推荐。
type RecommendationService struct {
	ProgressRepo    *repository.UserProgressRepository
	InteractionRepo *repository.InteractionRepository
	Search          *SearchService
}

func NewRecommendationService(progressRepo *repository.UserProgressRepository, interactionRepo *repository.InteractionRepository, search *SearchService) *RecommendationService {
	return &RecommendationService{
		ProgressRepo:    progressRepo,
		InteractionRepo: interactionRepo,
		Search:          search,
	}
}

func (s *RecommendationService) ForUser(ctx context.Context, userID string) (*Recommendations, error) {
	progress, err := s.ProgressRepo.FindByUserID(userID)
	if err == util.ErrUserNotFound {
		items, err := s.suggest(ctx, genericRecommendationQuery, 3)
		if err != nil {
			return nil, err
		}
		return &Recommendations{
			Success:         true,
			UserID:          userID,
			IsPersonalized:  false,
			Recommendations: items,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	query, limit := genericRecommendationQuery, 3

	recent, err := s.InteractionRepo.FindRecentByUserID(userID, 5)
	if err != nil {
		return nil, err
	}
	if len(recent) > 0 {
		n := len(recent)
		if n > 3 {
			n = 3
		}
		queries := make([]string, 0, n)
		for _, interaction := range recent[:n] {
			queries = append(queries, interaction.Query)
		}
		query, limit = strings.Join(queries, " "), 5
	} else if len(progress.Interests) > 0 {
		interests := progress.Interests
		if len(interests) > 3 {
			interests = interests[:3]
		}
		query, limit = strings.Join(interests, " "), 5
	}

	items, err := s.suggest(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	return &Recommendations{
		Success:         true,
		UserID:          userID,
		IsPersonalized:  true,
		Recommendations: items,
		UserLevel:       progress.Level,
		PreferredFormat: progress.PreferredFormat,
	}, nil
}

func (s *RecommendationService) suggest(ctx context.Context, query string, limit int) ([]model.RelatedContent, error) {
	result, err := s.Search.Search(ctx, query, "", limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.RelatedContent, 0, len(result.Results))
	for _, r := range result.Results {
		items = append(items, toRelatedContent(r))
	}
	return items, nil
}
