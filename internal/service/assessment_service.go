package service

import (
	"context"

	"aeducacao_backend/internal/assessment"
	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/internal/util"
	"aeducacao_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssessmentService 通过HTTP暴露评估流程。会话以JSON存Redis，每次
// 请求取回后继续推进；开放题的评判走分析管线，逐题串行等待。
type AssessmentService struct {
	Sessions     *repository.AssessmentSessionRepository
	ProgressRepo *repository.UserProgressRepository
	Evaluator    assessment.Evaluator
}

func NewAssessmentService(sessions *repository.AssessmentSessionRepository, progressRepo *repository.UserProgressRepository, evaluator assessment.Evaluator) *AssessmentService {
	return &AssessmentService{
		Sessions:     sessions,
		ProgressRepo: progressRepo,
		Evaluator:    evaluator,
	}
}

// Session 对外的会话视图
type Session struct {
	SessionID string           `json:"session_id"`
	Flow      *assessment.Flow `json:"flow"`
}

// Start 创建新会话并返回第一个问题
func (s *AssessmentService) Start(ctx context.Context, userID string) (*Session, error) {
	if userID == "" {
		userID = uuid.New().String()
	}

	flow := assessment.NewFlow(userID, nil, nil)
	flow.Start()

	sessionID := uuid.New().String()
	if err := s.Sessions.Save(ctx, sessionID, flow); err != nil {
		return nil, err
	}

	return &Session{SessionID: sessionID, Flow: flow}, nil
}

// Answer 推进会话一步。完成时把画像写入用户档案，回调只触发一次。
func (s *AssessmentService) Answer(ctx context.Context, sessionID, answer string) (*Session, error) {
	flow, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if flow.Completed {
		return nil, util.ErrSessionCompleted
	}

	flow.OnComplete(s.persistResult)
	flow.Answer(ctx, answer, s.Evaluator)

	if err := s.Sessions.Save(ctx, sessionID, flow); err != nil {
		return nil, err
	}

	return &Session{SessionID: sessionID, Flow: flow}, nil
}

// Get 取回会话当前状态
func (s *AssessmentService) Get(ctx context.Context, sessionID string) (*Session, error) {
	flow, err := s.Sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Session{SessionID: sessionID, Flow: flow}, nil
}

// persistResult 评估完成后落库：级别、偏好格式、弱项（最多5个）
func (s *AssessmentService) persistResult(result assessment.Result) {
	progress, err := s.ProgressRepo.FindOrCreate(result.UserID)
	if err != nil {
		logger.Log.Error("failed to load profile for assessment result",
			zap.String("user_id", result.UserID), zap.Error(err))
		return
	}

	progress.Level = result.Level
	progress.PreferredFormat = normalizeFormat(result.PreferredFormat)

	weaknesses := result.KnowledgeGaps
	if len(weaknesses) > 5 {
		weaknesses = weaknesses[:5]
	}
	progress.Weaknesses = weaknesses

	if err := s.ProgressRepo.Update(progress); err != nil {
		logger.Log.Error("failed to persist assessment result",
			zap.String("user_id", result.UserID), zap.Error(err))
	}
}

// normalizeFormat 非法格式值回退到texto
func normalizeFormat(format string) string {
	switch format {
	case model.FormatTexto, model.FormatVideo, model.FormatAudio, model.FormatImagem:
		return format
	default:
		return model.FormatTexto
	}
}
