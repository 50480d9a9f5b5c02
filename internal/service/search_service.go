package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const searchCacheKeyPrefix = "search:results:"

const previewLength = 300

// SearchService 对已索引文档做关键词检索，结果在Redis里短期缓存
type SearchService struct {
	DocumentRepo *repository.DocumentRepository
	Redis        *redis.Client
	DefaultLimit int
	CacheTTL     time.Duration
}

func NewSearchService(documentRepo *repository.DocumentRepository, rdb *redis.Client, defaultLimit int, cacheTTL time.Duration) *SearchService {
	if defaultLimit <= 0 {
		defaultLimit = 5
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &SearchService{
		DocumentRepo: documentRepo,
		Redis:        rdb,
		DefaultLimit: defaultLimit,
		CacheTTL:     cacheTTL,
	}
}

// Search 关键词检索；docType为空时不过滤类型
func (s *SearchService) Search(ctx context.Context, query string, docType model.DocType, limit int) (*model.SearchResponse, error) {
	if limit <= 0 {
		limit = s.DefaultLimit
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%d", searchCacheKeyPrefix, query, docType, limit)
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached model.SearchResponse
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("search cache lookup failed", zap.Error(err))
		}
	}

	docs, err := s.DocumentRepo.Search(query, docType, limit)
	if err != nil {
		return nil, err
	}

	response := &model.SearchResponse{
		Success: true,
		Query:   query,
		Count:   len(docs),
		Results: make([]model.SearchResult, 0, len(docs)),
	}
	for _, doc := range docs {
		response.Results = append(response.Results, toSearchResult(doc))
	}

	if s.Redis != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, s.CacheTTL).Err(); err != nil {
				logger.Log.Warn("search cache store failed", zap.Error(err))
			}
		}
	}

	return response, nil
}

func toSearchResult(doc model.Document) model.SearchResult {
	preview := doc.Content
	if preview == "" {
		preview = doc.Title
	}
	if len(preview) > previewLength {
		preview = truncateRunes(preview, previewLength)
	}

	return model.SearchResult{
		ID:             doc.DocID,
		Type:           string(doc.DocType),
		ContentPreview: preview,
		Metadata: model.SearchResultMetadata{
			Source:          doc.Source,
			Title:           doc.Title,
			SizeBytes:       doc.SizeBytes,
			Pages:           doc.Pages,
			DurationSeconds: doc.DurationSeconds,
		},
	}
}

// truncateRunes 按字符截断，避免把多字节字符切半
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
