package service

import (
	"testing"
	"time"

	"aeducacao_backend/internal/model"
)

func interactionAt(query, feedback string, at time.Time) model.Interaction {
	return model.Interaction{
		Base:     model.Base{CreatedAt: at},
		Query:    query,
		Feedback: feedback,
	}
}

func TestExtractTopics(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words and short words dropped", "qual a melhor receita de bolo simples", []string{"melhor", "receita", "bolo", "simples"}},
		{"known bigram absorbs its words", "o que é banco dados relacional", []string{"banco dados", "relacional"}},
		{"punctuation stripped", "Geometria?!", []string{"geometria"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTopics(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("ExtractTopics(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("topic[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestExtractTopicsCapsAtFive(t *testing.T) {
	got := ExtractTopics("algoritmo função variável geometria estatística probabilidade frontend")
	if len(got) != 5 {
		t.Errorf("expected 5 topics, got %d: %v", len(got), got)
	}
}

func TestExtractTopicsSubstringDedup(t *testing.T) {
	// "banco dados"先进入，后续的"banco"和"dados"作为子串被去重
	got := ExtractTopics("banco dados dados banco")
	if len(got) != 1 || got[0] != "banco dados" {
		t.Errorf("ExtractTopics = %v, want [banco dados]", got)
	}
}

func TestDetermineTopicCategory(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"python", "programação"},
		{"frontend", "web"},
		{"banco dados", "dados"},
		{"exercício", "educacional"},
		{"geometria", "matemática"},
		{"culinária", "geral"},
	}
	for _, tt := range tests {
		if got := determineTopicCategory(tt.topic); got != tt.want {
			t.Errorf("determineTopicCategory(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestIdentifyGapsNegativeFeedbackDominates(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	interactions := []model.Interaction{
		interactionAt("formulários", "não entendi, muito confuso", base),
		interactionAt("formulários", "ruim, não ajudou", base.Add(10*time.Minute)),
		interactionAt("javascript", "entendi, muito claro", base.Add(20*time.Minute)),
	}

	s := &LearningGapService{}
	gaps := s.identifyGaps(interactions)

	if len(gaps) != 1 {
		t.Fatalf("expected exactly one gap, got %v", gaps)
	}
	if gaps[0].Topic != "formulários" {
		t.Errorf("top gap = %q, want formulários", gaps[0].Topic)
	}
	if gaps[0].Severity != "alta" {
		t.Errorf("severity = %q, want alta", gaps[0].Severity)
	}
	if gaps[0].Score < gapThreshold {
		t.Errorf("gap scored %.2f, below threshold", gaps[0].Score)
	}
}

func TestSeverityRank(t *testing.T) {
	if severityRank("alta") <= severityRank("média") {
		t.Error("alta should outrank média")
	}
	if severityRank("média") <= severityRank("baixa") {
		t.Error("média should outrank baixa")
	}
}

func TestAnalyzeTimePerTopic(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	interactions := []model.Interaction{
		interactionAt("html", "", base),
		interactionAt("html", "", base.Add(10*time.Minute)),
	}

	topicTime := analyzeTimePerTopic(interactions)
	// 第一次交互贡献10分钟，最后一次固定按5分钟计
	if got := topicTime["html"]; got != 15 {
		t.Errorf("time for html = %.1f, want 15", got)
	}
}

func TestAnalyzeTimePerTopicLongGapCapped(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	interactions := []model.Interaction{
		interactionAt("html", "", base),
		interactionAt("formulários", "", base.Add(2*time.Hour)),
	}

	topicTime := analyzeTimePerTopic(interactions)
	if got := topicTime["html"]; got != 5 {
		t.Errorf("gap over 30min should count as 5 minutes, got %.1f", got)
	}
}

func TestPositiveRatio(t *testing.T) {
	base := time.Now()
	interactions := []model.Interaction{
		interactionAt("html", "muito bom", base),
		interactionAt("html", "ruim", base),
		interactionAt("html", "", base),
	}
	if got := positiveRatio(interactions); got != 0.5 {
		t.Errorf("positiveRatio = %.2f, want 0.5", got)
	}
	if got := positiveRatio(nil); got != 0.5 {
		t.Errorf("positiveRatio without feedback should be neutral 0.5, got %.2f", got)
	}
}

func TestCalculateEngagement(t *testing.T) {
	base := time.Now()
	interactions := []model.Interaction{
		interactionAt("o que é html", "útil", base),
		interactionAt("formulários", "", base),
	}

	m := calculateEngagement(interactions)
	if m.TotalInteractions != 2 {
		t.Errorf("TotalInteractions = %d, want 2", m.TotalInteractions)
	}
	if m.FeedbackRate != 0.5 {
		t.Errorf("FeedbackRate = %.2f, want 0.5", m.FeedbackRate)
	}
	if m.TopicsExplored != 2 {
		t.Errorf("TopicsExplored = %d, want 2", m.TopicsExplored)
	}
}

func TestIdentifyStrengths(t *testing.T) {
	base := time.Now()
	var interactions []model.Interaction
	for i := 0; i < 3; i++ {
		interactionTime := base.Add(time.Duration(i) * time.Minute)
		interactions = append(interactions, interactionAt("formulários", "entendi, muito claro", interactionTime))
	}
	interactions = append(interactions, interactionAt("html", "confuso", base))

	strengths := identifyStrengths(interactions)
	if len(strengths) != 1 || strengths[0] != "formulários" {
		t.Errorf("strengths = %v, want [formulários]", strengths)
	}
}

func TestAdjustLevelForGap(t *testing.T) {
	if got := adjustLevelForGap(model.LevelAvancado, "alta"); got != model.LevelIniciante {
		t.Errorf("alta severity should force iniciante, got %q", got)
	}
	if got := adjustLevelForGap(model.LevelIntermediario, "média"); got != model.LevelIntermediario {
		t.Errorf("média severity should keep user level, got %q", got)
	}
	if got := adjustLevelForGap(model.LevelIniciante, "baixa"); got != model.LevelAvancado {
		t.Errorf("baixa severity should raise to avançado, got %q", got)
	}
}

func TestEstimatedTimeFor(t *testing.T) {
	tests := []struct{ severity, want string }{
		{"baixa", "1-2 horas"},
		{"média", "3-5 horas"},
		{"alta", "5-10 horas"},
	}
	for _, tt := range tests {
		if got := estimatedTimeFor(tt.severity); got != tt.want {
			t.Errorf("estimatedTimeFor(%q) = %q, want %q", tt.severity, got, tt.want)
		}
	}
}
