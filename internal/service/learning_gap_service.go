package service

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/pkg/logger"

	"go.uber.org/zap"
)

// 缺口判定阈值：综合得分达到0.6视为存在知识缺口
const gapThreshold = 0.6

// topicCategories 主题归类词表
var topicCategories = map[string][]string{
	"programação": {"python", "java", "javascript", "código", "algoritmo", "função", "variável"},
	"web":         {"html", "css", "frontend", "backend", "api", "http", "rest"},
	"dados":       {"banco", "database", "sql", "análise", "data", "json", "tabela"},
	"educacional": {"aprendizado", "estudo", "conceito", "teoria", "prática", "exercício"},
	"matemática":  {"álgebra", "geometria", "cálculo", "estatística", "probabilidade"},
}

var topicStopWords = map[string]bool{
	"como": true, "qual": true, "quais": true, "porque": true, "por": true,
	"que": true, "e": true, "o": true, "a": true, "os": true, "as": true,
	"um": true, "uma": true, "para": true, "em": true, "da": true, "do": true,
	"das": true, "dos": true, "me": true, "meu": true, "minha": true,
	"seu": true, "sua": true, "este": true, "esta": true, "isso": true,
	"aquilo": true, "estes": true, "estas": true,
}

var negativeFeedbackWords = []string{"negativo", "ruim", "difícil", "confuso", "não ajudou", "não entendi"}

var positiveFeedbackWords = []string{"positivo", "bom", "útil", "ajudou", "entendi", "claro"}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// LearningGapService 基于交互历史识别用户的知识缺口：主题出现频率、
// 按主题聚合的负反馈比例和按主题分摊的停留时间按固定权重合成缺口得分。
type LearningGapService struct {
	ProgressRepo    *repository.UserProgressRepository
	InteractionRepo *repository.InteractionRepository
	Search          *SearchService
}

func NewLearningGapService(progressRepo *repository.UserProgressRepository, interactionRepo *repository.InteractionRepository, search *SearchService) *LearningGapService {
	return &LearningGapService{
		ProgressRepo:    progressRepo,
		InteractionRepo: interactionRepo,
		Search:          search,
	}
}

// AnalyzeProgress 缺口分析主入口；没有交互记录时返回 insufficient_data
func (s *LearningGapService) AnalyzeProgress(ctx context.Context, userID string) (*model.GapAnalysis, error) {
	interactions, err := s.InteractionRepo.CollectByUserID(userID)
	if err != nil {
		return nil, err
	}

	if len(interactions) == 0 {
		return &model.GapAnalysis{
			UserID:  userID,
			Status:  "insufficient_data",
			Message: "Dados insuficientes para análise de lacunas",
		}, nil
	}

	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	gaps := s.identifyGaps(interactions)

	return &model.GapAnalysis{
		UserID:                 userID,
		Status:                 "success",
		AnalysisDate:           time.Now().Format(time.RFC3339),
		OverallProgress:        calculateProgressScore(interactions),
		EngagementMetrics:      calculateEngagement(interactions),
		IdentifiedGaps:         gaps,
		ImprovementSuggestions: generateSuggestions(gaps, progress.Level),
		Strengths:              progress.Strengths,
		Weaknesses:             progress.Weaknesses,
	}, nil
}

// identifyGaps 三个因素加权合成缺口得分：
// 主题频率×0.3 + 负反馈比例×0.5 + 时间强度×0.2
func (s *LearningGapService) identifyGaps(interactions []model.Interaction) []model.Gap {
	frequency := analyzeTopicFrequency(interactions)
	negative := analyzeNegativeFeedback(interactions)
	timePerTopic := analyzeTimePerTopic(interactions)

	maxFreq := 0
	for _, count := range frequency {
		if count > maxFreq {
			maxFreq = count
		}
	}
	maxTime := 0.0
	for _, t := range timePerTopic {
		if t > maxTime {
			maxTime = t
		}
	}

	topics := make(map[string]bool)
	for topic := range frequency {
		topics[topic] = true
	}
	for topic := range negative {
		topics[topic] = true
	}

	var gaps []model.Gap
	for topic := range topics {
		score := 0.0
		if maxFreq > 0 {
			score += float64(frequency[topic]) / float64(maxFreq) * 0.3
		}
		score += negative[topic] * 0.5
		if maxTime > 0 {
			score += timePerTopic[topic] / maxTime * 0.2
		}

		if score < gapThreshold {
			continue
		}

		severity := "baixa"
		if score > 0.8 {
			severity = "alta"
		} else if score > 0.7 {
			severity = "média"
		}

		gaps = append(gaps, model.Gap{
			Topic:            topic,
			Category:         determineTopicCategory(topic),
			Score:            round2(score),
			Severity:         severity,
			Frequency:        frequency[topic],
			NegativeFeedback: negative[topic],
			TimeIntensity:    timePerTopic[topic],
		})
	}

	// 高严重度在前，同级按得分降序
	sort.SliceStable(gaps, func(i, j int) bool {
		ri, rj := severityRank(gaps[i].Severity), severityRank(gaps[j].Severity)
		if ri != rj {
			return ri > rj
		}
		return gaps[i].Score > gaps[j].Score
	})

	return gaps
}

// GenerateImprovementPlan 取前三个缺口生成步骤化的改进计划，
// 每步附带检索到的学习资源，建议14天内完成
func (s *LearningGapService) GenerateImprovementPlan(ctx context.Context, userID string) (*model.ImprovementPlan, error) {
	analysis, err := s.AnalyzeProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	if analysis.Status != "success" || len(analysis.IdentifiedGaps) == 0 {
		return &model.ImprovementPlan{
			UserID:  userID,
			Status:  "no_gaps_identified",
			Message: "Não foram identificadas lacunas significativas",
		}, nil
	}

	userLevel := model.LevelIntermediario
	if progress, err := s.ProgressRepo.FindByUserID(userID); err == nil {
		userLevel = progress.Level
	}

	gaps := analysis.IdentifiedGaps
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}

	var steps []model.PlanStep
	for i, gap := range gaps {
		contentLevel := adjustLevelForGap(userLevel, gap.Severity)

		var resources []model.PlanResource
		if s.Search != nil {
			query := fmt.Sprintf("aprender %s %s conceitos básicos", gap.Topic, gap.Category)
			if result, err := s.Search.Search(ctx, query, "", 3); err == nil {
				for _, r := range result.Results {
					preview := r.ContentPreview
					if len([]rune(preview)) > 100 {
						preview = truncateRunes(preview, 100) + "..."
					}
					resources = append(resources, model.PlanResource{
						ID:      r.ID,
						Title:   r.Metadata.Title,
						Type:    r.Type,
						Preview: preview,
					})
				}
			} else {
				logger.Log.Warn("failed to fetch plan resources",
					zap.String("topic", gap.Topic), zap.Error(err))
			}
		}

		steps = append(steps, model.PlanStep{
			Step:              i + 1,
			Topic:             gap.Topic,
			Category:          gap.Category,
			Goal:              fmt.Sprintf("Preencher lacuna de conhecimento em '%s'", gap.Topic),
			SuggestedApproach: approachForGap(gap.Topic, gap.Severity, contentLevel),
			Resources:         resources,
			EstimatedTime:     estimatedTimeFor(gap.Severity),
		})
	}

	now := time.Now()
	return &model.ImprovementPlan{
		UserID:                    userID,
		Status:                    "success",
		CreationDate:              now.Format(time.RFC3339),
		RecommendedCompletionDate: now.AddDate(0, 0, 14).Format(time.RFC3339),
		PlanTitle:                 "Plano de Melhoria Personalizado",
		Steps:                     steps,
		OverallGoal:               "Melhorar o entendimento dos tópicos identificados como lacunas de conhecimento",
	}, nil
}

// UpdateStrengthsWeaknesses 把正反馈主题写入强项、média/alta缺口写入弱项，各取前5
func (s *LearningGapService) UpdateStrengthsWeaknesses(ctx context.Context, userID string) error {
	interactions, err := s.InteractionRepo.CollectByUserID(userID)
	if err != nil {
		return err
	}

	progress, err := s.ProgressRepo.FindOrCreate(userID)
	if err != nil {
		return err
	}

	var weaknesses []string
	for _, gap := range s.identifyGaps(interactions) {
		if gap.Severity == "média" || gap.Severity == "alta" {
			weaknesses = append(weaknesses, gap.Topic)
		}
	}
	if len(weaknesses) > 5 {
		weaknesses = weaknesses[:5]
	}

	strengths := identifyStrengths(interactions)
	if len(strengths) > 5 {
		strengths = strengths[:5]
	}

	progress.Strengths = strengths
	progress.Weaknesses = weaknesses
	return s.ProgressRepo.Update(progress)
}

func analyzeTopicFrequency(interactions []model.Interaction) map[string]int {
	counts := make(map[string]int)
	for _, interaction := range interactions {
		for _, topic := range ExtractTopics(interaction.Query) {
			counts[topic]++
		}
	}
	return counts
}

// analyzeNegativeFeedback 每个主题的负反馈比例（0..1）
func analyzeNegativeFeedback(interactions []model.Interaction) map[string]float64 {
	total := make(map[string]int)
	negative := make(map[string]int)

	for _, interaction := range interactions {
		if interaction.Feedback == "" {
			continue
		}
		isNegative := containsAny(strings.ToLower(interaction.Feedback), negativeFeedbackWords)
		for _, topic := range ExtractTopics(interaction.Query) {
			total[topic]++
			if isNegative {
				negative[topic]++
			}
		}
	}

	ratio := make(map[string]float64, len(total))
	for topic, count := range total {
		if count > 0 {
			ratio[topic] = float64(negative[topic]) / float64(count)
		}
	}
	return ratio
}

// analyzeTimePerTopic 用相邻交互的时间差估算主题停留时间（分钟）。
// 间隔超过30分钟视为离开，按5分钟计；最后一次交互也按5分钟计。
func analyzeTimePerTopic(interactions []model.Interaction) map[string]float64 {
	sorted := make([]model.Interaction, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	topicTime := make(map[string]float64)
	for i := 0; i < len(sorted)-1; i++ {
		diff := sorted[i+1].CreatedAt.Sub(sorted[i].CreatedAt).Minutes()
		if diff > 30 {
			diff = 5
		}

		topics := ExtractTopics(sorted[i].Query)
		if len(topics) == 0 {
			continue
		}
		share := diff / float64(len(topics))
		for _, topic := range topics {
			topicTime[topic] += share
		}
	}

	if len(sorted) > 0 {
		for _, topic := range ExtractTopics(sorted[len(sorted)-1].Query) {
			topicTime[topic] += 5
		}
	}
	return topicTime
}

// ExtractTopics 提取查询中的主题词：去停用词、保留长词、
// 词表命中的二元组优先，互为子串的只留先出现的，最多5个
func ExtractTopics(text string) []string {
	clean := nonWordRe.ReplaceAllString(strings.ToLower(text), " ")
	words := strings.Fields(clean)

	var filtered []string
	for _, w := range words {
		if !topicStopWords[w] && len([]rune(w)) > 3 {
			filtered = append(filtered, w)
		}
	}

	var bigrams []string
	for i := 0; i < len(filtered)-1; i++ {
		bigram := filtered[i] + " " + filtered[i+1]
		if bigramIsKnown(bigram) {
			bigrams = append(bigrams, bigram)
		}
	}

	candidates := append(bigrams, filtered...)

	var topics []string
	for _, candidate := range candidates {
		duplicate := false
		for _, existing := range topics {
			if strings.Contains(existing, candidate) || strings.Contains(candidate, existing) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			topics = append(topics, candidate)
		}
		if len(topics) == 5 {
			break
		}
	}
	return topics
}

var knownBigrams = map[string]bool{
	"aprendizado máquina":     true,
	"banco dados":             true,
	"ciência dados":           true,
	"inteligência artificial": true,
}

func bigramIsKnown(bigram string) bool {
	if knownBigrams[bigram] {
		return true
	}
	for _, terms := range topicCategories {
		for _, term := range terms {
			if strings.Contains(bigram, term) {
				return true
			}
		}
	}
	return false
}

func determineTopicCategory(topic string) string {
	lower := strings.ToLower(topic)
	// 固定顺序遍历，保证同一主题总落到同一类别
	for _, category := range []string{"programação", "web", "dados", "educacional", "matemática"} {
		for _, term := range topicCategories[category] {
			if strings.Contains(lower, term) {
				return category
			}
		}
	}
	return "geral"
}

// calculateProgressScore 综合进度分：交互量×0.3 + 主题多样性×0.2 +
// 正反馈比例×0.25 + 近期趋势×0.25
func calculateProgressScore(interactions []model.Interaction) float64 {
	if len(interactions) == 0 {
		return 0
	}

	interactionScore := math.Min(1.0, float64(len(interactions))/100)

	topicSet := make(map[string]bool)
	for _, interaction := range interactions {
		for _, topic := range ExtractTopics(interaction.Query) {
			topicSet[topic] = true
		}
	}
	topicDiversity := math.Min(1.0, float64(len(topicSet))/20)

	feedbackScore := positiveRatio(interactions)

	recentTrend := 0.5
	if len(interactions) >= 5 {
		sorted := make([]model.Interaction, len(interactions))
		copy(sorted, interactions)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
		recentTrend = positiveRatio(sorted[len(sorted)-5:])
	}

	return round2(interactionScore*0.3 + topicDiversity*0.2 + feedbackScore*0.25 + recentTrend*0.25)
}

// positiveRatio 带反馈交互中的正反馈比例，无反馈时中性0.5
func positiveRatio(interactions []model.Interaction) float64 {
	positive, withFeedback := 0, 0
	for _, interaction := range interactions {
		if interaction.Feedback == "" {
			continue
		}
		withFeedback++
		if containsAny(strings.ToLower(interaction.Feedback), positiveFeedbackWords) {
			positive++
		}
	}
	if withFeedback == 0 {
		return 0.5
	}
	return float64(positive) / float64(withFeedback)
}

func calculateEngagement(interactions []model.Interaction) model.EngagementMetrics {
	withFeedback := 0
	topicSet := make(map[string]bool)
	for _, interaction := range interactions {
		if interaction.Feedback != "" {
			withFeedback++
		}
		for _, topic := range ExtractTopics(interaction.Query) {
			topicSet[topic] = true
		}
	}

	feedbackRate := 0.0
	if len(interactions) > 0 {
		feedbackRate = float64(withFeedback) / float64(len(interactions))
	}

	return model.EngagementMetrics{
		TotalInteractions: len(interactions),
		FeedbackRate:      round2(feedbackRate),
		PositiveRate:      round2(positiveRatio(interactions)),
		TopicsExplored:    len(topicSet),
	}
}

// identifyStrengths 至少3次交互且正反馈比例≥0.7的主题
func identifyStrengths(interactions []model.Interaction) []string {
	total := make(map[string]int)
	positive := make(map[string]int)

	for _, interaction := range interactions {
		if interaction.Feedback == "" {
			continue
		}
		isPositive := containsAny(strings.ToLower(interaction.Feedback), positiveFeedbackWords)
		for _, topic := range ExtractTopics(interaction.Query) {
			total[topic]++
			if isPositive {
				positive[topic]++
			}
		}
	}

	var strengths []string
	for topic, count := range total {
		if count >= 3 && float64(positive[topic])/float64(count) >= 0.7 {
			strengths = append(strengths, topic)
		}
	}

	sort.SliceStable(strengths, func(i, j int) bool {
		return positive[strengths[i]] > positive[strengths[j]]
	})
	return strengths
}

func generateSuggestions(gaps []model.Gap, userLevel string) []model.Suggestion {
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}

	var suggestions []model.Suggestion
	for _, gap := range gaps {
		adjusted := adjustLevelForGap(userLevel, gap.Severity)
		suggestions = append(suggestions, model.Suggestion{
			Topic:       gap.Topic,
			Title:       fmt.Sprintf("Melhorar conhecimento em %s", gap.Topic),
			Description: approachForGap(gap.Topic, gap.Severity, adjusted),
			Category:    gap.Category,
			Severity:    gap.Severity,
			Level:       adjusted,
		})
	}
	return suggestions
}

func approachForGap(topic, severity, level string) string {
	switch severity {
	case "alta":
		return fmt.Sprintf(
			"Revisar conceitos fundamentais de %s com materiais de nível %s. "+
				"Recomenda-se dedicar pelo menos 1 hora diária para este tópico, "+
				"começando com conceitos básicos e exercícios práticos simples.",
			topic, level)
	case "média":
		return fmt.Sprintf(
			"Reforçar o conhecimento de %s com exercícios práticos de nível %s. "+
				"Experimente aplicar os conceitos em pequenos projetos para consolidar "+
				"o aprendizado e identificar pontos específicos de dificuldade.",
			topic, level)
	default:
		return fmt.Sprintf(
			"Aprofundar conhecimentos em %s com recursos avançados de nível %s. "+
				"Busque aplicar os conceitos em situações desafiadoras e conectar "+
				"com outros tópicos para fortalecer o entendimento.",
			topic, level)
	}
}

// adjustLevelForGap 严重缺口降到iniciante，轻微缺口拔高到avançado
func adjustLevelForGap(userLevel, severity string) string {
	switch severity {
	case "alta":
		return model.LevelIniciante
	case "média":
		return userLevel
	default:
		return model.LevelAvancado
	}
}

func estimatedTimeFor(severity string) string {
	switch severity {
	case "baixa":
		return "1-2 horas"
	case "média":
		return "3-5 horas"
	default:
		return "5-10 horas"
	}
}

func severityRank(severity string) int {
	switch severity {
	case "alta":
		return 2
	case "média":
		return 1
	default:
		return 0
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
