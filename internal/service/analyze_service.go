package service

import (
	"context"
	"fmt"
	"strings"

	"aeducacao_backend/internal/media"
	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/internal/util"
	"aeducacao_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 每条相关内容的预览截断长度
const relatedPreviewLength = 150

// AnalyzeService 把自由文本查询变成自适应学习响应：检索相关文档、
// 按用户级别和偏好格式组装带媒体标记的回答、推导媒体标志并记录交互。
type AnalyzeService struct {
	Search          *SearchService
	ProgressRepo    *repository.UserProgressRepository
	InteractionRepo *repository.InteractionRepository
	DefaultSamples  map[string]string
}

func NewAnalyzeService(search *SearchService, progressRepo *repository.UserProgressRepository, interactionRepo *repository.InteractionRepository, defaultSamples map[string]string) *AnalyzeService {
	if defaultSamples == nil {
		defaultSamples = map[string]string{}
	}
	return &AnalyzeService{
		Search:          search,
		ProgressRepo:    progressRepo,
		InteractionRepo: interactionRepo,
		DefaultSamples:  defaultSamples,
	}
}

// Analyze 处理一次查询，响应文本生成后不再修改（之后只允许附加反馈）
func (s *AnalyzeService) Analyze(ctx context.Context, req *model.QueryRequest) (*model.AnalyzeResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = uuid.New().String()
	}
	queryID := uuid.New().String()

	searchResult, err := s.Search.Search(ctx, req.Query, "", 5)
	if err != nil {
		return nil, err
	}

	related := make([]model.RelatedContent, 0, len(searchResult.Results))
	for _, r := range searchResult.Results {
		related = append(related, toRelatedContent(r))
	}

	responseText := composeResponse(req.Query, searchResult.Results, req.UserLevel)
	if strings.TrimSpace(responseText) == "" {
		return nil, util.ErrEmptyResponse
	}

	resp := &model.AnalyzeResponse{
		Success:        true,
		UserID:         userID,
		QueryID:        queryID,
		Response:       responseText,
		RelatedContent: related,
		NeuralEnhanced: false,
	}
	s.deriveMediaFlags(resp)

	if err := s.storeInteraction(userID, queryID, req.Query, responseText); err != nil {
		logger.Log.Warn("failed to store interaction",
			zap.String("user_id", userID), zap.Error(err))
	}

	return resp, nil
}

// RecordFeedback 把反馈附加到对应的交互记录上
func (s *AnalyzeService) RecordFeedback(req *model.FeedbackRequest) error {
	interaction, err := s.InteractionRepo.FindByQueryID(req.QueryID)
	if err != nil {
		return err
	}
	if interaction.UserID != req.UserID {
		return util.ErrInteractionNotFound
	}

	interaction.Feedback = req.Feedback
	return s.InteractionRepo.Update(interaction)
}

// Evaluate 让分析管线充当开放题的启发式评判：把问题和回答拼成查询，
// 返回的文本由评估流程扫描缺口信号词
func (s *AnalyzeService) Evaluate(ctx context.Context, question, answer string) (string, error) {
	resp, err := s.Analyze(ctx, &model.QueryRequest{
		Query: fmt.Sprintf("Avalie se a resposta está correta.\nPergunta: %s\nResposta: %s", question, answer),
	})
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

func (s *AnalyzeService) storeInteraction(userID, queryID, query, response string) error {
	if _, err := s.ProgressRepo.FindOrCreate(userID); err != nil {
		return err
	}
	if err := s.ProgressRepo.Touch(userID); err != nil {
		return err
	}
	return s.InteractionRepo.Create(&model.Interaction{
		UserID:   userID,
		QueryID:  queryID,
		Query:    query,
		Response: response,
	})
}

// deriveMediaFlags 推导 has_* 标志、file_path 和 primary_media_type。
// 文本提及某类媒体就置位并给出默认示例路径；显式标记覆盖一切并按
// 扩展名定主类型；都没有时保持 mixed。
func (s *AnalyzeService) deriveMediaFlags(resp *model.AnalyzeResponse) {
	resp.PrimaryMediaType = media.PrimaryTypeMixed

	if media.HasKindMention(resp.Response, media.KindVideo) {
		resp.HasVideoContent = true
		if resp.FilePath == "" {
			resp.FilePath = s.DefaultSamples[media.PrimaryTypeVideo]
		}
	}
	if media.HasKindMention(resp.Response, media.KindAudio) {
		resp.HasAudioContent = true
		if resp.FilePath == "" {
			resp.FilePath = s.DefaultSamples[media.PrimaryTypeAudio]
		}
	}
	if media.HasKindMention(resp.Response, media.KindImage) {
		resp.HasImageContent = true
		if resp.FilePath == "" {
			resp.FilePath = s.DefaultSamples[media.PrimaryTypeImage]
		}
	}

	marker, ok := media.FindMarker(resp.Response)
	if !ok {
		return
	}
	resp.FilePath = marker

	switch media.Classify(marker) {
	case media.KindVideo:
		resp.PrimaryMediaType = media.PrimaryTypeVideo
		resp.HasVideoContent = true
	case media.KindAudio:
		resp.PrimaryMediaType = media.PrimaryTypeAudio
		resp.HasAudioContent = true
	case media.KindImage:
		resp.PrimaryMediaType = media.PrimaryTypeImage
		resp.HasImageContent = true
	case media.KindExercises:
		resp.PrimaryMediaType = media.PrimaryTypeExercises
	default:
		resp.PrimaryMediaType = media.PrimaryTypeText
	}
}

func toRelatedContent(r model.SearchResult) model.RelatedContent {
	preview := r.ContentPreview
	if len([]rune(preview)) > relatedPreviewLength {
		preview = truncateRunes(preview, relatedPreviewLength) + "..."
	}

	title := r.Metadata.Title
	if title == "" {
		title = r.ID
	}

	return model.RelatedContent{
		ID:             r.ID,
		Title:          title,
		Type:           relatedTypeFor(r.Metadata.Source, r.Type),
		ContentPreview: preview,
		Source:         r.Metadata.Source,
	}
}

// relatedTypeFor 类型按来源扩展名推，元数据类型兜底
func relatedTypeFor(source, fallback string) string {
	switch media.Classify(source) {
	case media.KindVideo:
		return "video"
	case media.KindAudio:
		return "audio"
	case media.KindImage:
		return "image"
	}
	if media.Ext(source) == "pdf" {
		return "pdf"
	}
	if fallback != "" {
		return fallback
	}
	return "text"
}

// composeResponse 按级别截取文档正文组装回答。找到媒体文档时插入
// <!-- file_path: … --> 标记和提示行，结尾列出来源。没有任何相关
// 文档时返回固定的"未找到"回答。
func composeResponse(query string, results []model.SearchResult, userLevel string) string {
	if len(results) == 0 {
		return "Não sei responder exatamente sua pergunta, mas aqui está uma provável resposta com base nos recursos disponíveis:\n\n" +
			"Infelizmente, não encontrei informações específicas sobre este tópico nos recursos disponíveis. Tente outra pergunta."
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("✅ **%s:**", capitalize(query)))

	var combined strings.Builder
	excerptSize := excerptSizeFor(userLevel)
	for _, r := range results {
		text := strings.TrimSpace(r.ContentPreview)
		if text == "" {
			continue
		}
		if len([]rune(text)) > excerptSize {
			text = truncateRunes(text, excerptSize)
		}
		combined.WriteString(text)
		combined.WriteString(" ")
	}

	for _, para := range splitParagraphs(combined.String()) {
		parts = append(parts, para, "")
	}

	appendMediaMarker(&parts, results, media.KindVideo,
		"📺 **Assista ao vídeo sobre este tema para visualizar melhor o conteúdo.**")
	appendMediaMarker(&parts, results, media.KindAudio,
		"🔊 **Ouça a explicação em áudio para entender melhor o tema.**")
	appendMediaMarker(&parts, results, media.KindImage,
		"🖼️ **Veja a imagem relacionada a este tema para melhor compreensão.**")

	parts = append(parts, "📚 **Fontes consultadas:**")
	for i, r := range results {
		title := r.Metadata.Title
		if title == "" {
			title = r.ID
		}
		parts = append(parts, fmt.Sprintf("%d. %s: %s", i+1, r.Type, title))
	}

	parts = append(parts, "\n🧐 **Posso aprofundar algum ponto específico sobre este tema?**")

	return strings.Join(parts, "\n")
}

// appendMediaMarker 把第一个该类媒体文档的来源写成前端可识别的标记
func appendMediaMarker(parts *[]string, results []model.SearchResult, kind media.Kind, hint string) {
	for _, r := range results {
		if r.Metadata.Source == "" || media.Classify(r.Metadata.Source) != kind {
			continue
		}
		*parts = append(*parts, "<!-- file_path: "+r.Metadata.Source+" -->", hint, "")
		return
	}
}

// splitParagraphs 把连续文本按句子切成约250字符的段落
func splitParagraphs(content string) []string {
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	if content == "" {
		return nil
	}

	var paragraphs []string
	var current strings.Builder
	for _, sentence := range strings.Split(content, ". ") {
		if sentence == "" {
			continue
		}
		if current.Len() > 250 {
			paragraphs = append(paragraphs, current.String())
			current.Reset()
		}
		current.WriteString(sentence)
		current.WriteString(". ")
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
	}
	return paragraphs
}

// excerptSizeFor 级别越高，引用的文档片段越长
func excerptSizeFor(userLevel string) int {
	switch userLevel {
	case model.LevelIniciante:
		return 150
	case model.LevelAvancado:
		return 400
	default:
		return 250
	}
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
