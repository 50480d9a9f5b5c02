package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"aeducacao_backend/internal/exercise"
	"aeducacao_backend/internal/util"
)

// 习题资源抓取上限，避免误把大媒体文件读进内存
const maxExerciseBody = 4 << 20

// ExerciseService 解析习题资源：先把路径解析成可访问URL，抓取内容
// 后交给解析器。解析失败与抓取失败是两类错误，解析失败时调用方
// 仍能拿到原始资源URL作为兜底链接。
type ExerciseService struct {
	Media  *MediaService
	Client *http.Client
}

func NewExerciseService(mediaService *MediaService) *ExerciseService {
	return &ExerciseService{
		Media:  mediaService,
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

// ExerciseSet 解析结果加上资源URL
type ExerciseSet struct {
	Source    string              `json:"source"`
	Exercises []exercise.Exercise `json:"exercises"`
}

// Fetch 抓取并解析一个习题资源。返回的URL在解析失败时也有效。
func (s *ExerciseService) Fetch(ctx context.Context, rawPath string) (*ExerciseSet, string, error) {
	url := s.Media.Normalizer.Resolve(rawPath)
	if url == "" {
		return nil, "", fmt.Errorf("caminho de exercícios vazio")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, url, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, url, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, url, fmt.Errorf("falha ao buscar exercícios: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExerciseBody))
	if err != nil {
		return nil, url, err
	}

	exercises, err := exercise.Parse(data)
	if err != nil {
		// ErrNoExercisesFound：调用方展示错误并给出原始URL链接
		return nil, url, err
	}

	return &ExerciseSet{Source: url, Exercises: exercises}, url, nil
}

// IsParseFailure 区分解析失败和网络失败
func IsParseFailure(err error) bool {
	return err == util.ErrNoExercisesFound
}
