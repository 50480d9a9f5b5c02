package service

import (
	"strings"
	"testing"

	"aeducacao_backend/internal/media"
	"aeducacao_backend/internal/model"
)

func textResult(id, title, preview string) model.SearchResult {
	return model.SearchResult{
		ID:             id,
		Type:           "text",
		ContentPreview: preview,
		Metadata:       model.SearchResultMetadata{Title: title, Source: "text/" + title + ".txt"},
	}
}

func TestComposeResponseNotFound(t *testing.T) {
	got := composeResponse("o que é html", nil, model.LevelIntermediario)
	if !strings.Contains(got, "não encontrei informações específicas") {
		t.Errorf("expected the fixed not-found answer, got %q", got)
	}
}

func TestComposeResponseStructure(t *testing.T) {
	results := []model.SearchResult{
		textResult("text_apostila", "apostila", "HTML5 é a versão mais recente da linguagem de marcação."),
	}

	got := composeResponse("o que é html5", results, model.LevelIntermediario)

	if !strings.HasPrefix(got, "✅ **O que é html5:**") {
		t.Errorf("response should open with the capitalized query, got %q", got)
	}
	if !strings.Contains(got, "📚 **Fontes consultadas:**") {
		t.Error("missing sources section")
	}
	if !strings.Contains(got, "1. text: apostila") {
		t.Error("missing numbered source line")
	}
	if !strings.Contains(got, "🧐 **Posso aprofundar algum ponto específico sobre este tema?**") {
		t.Error("missing closing prompt")
	}
}

func TestComposeResponseVideoMarker(t *testing.T) {
	results := []model.SearchResult{
		textResult("text_apostila", "apostila", "Formulários HTML coletam dados do usuário."),
		{
			ID:             "video_dica",
			Type:           "video",
			ContentPreview: "",
			Metadata: model.SearchResultMetadata{
				Title:  "Dica do professor",
				Source: "videos/Dica do professor.mp4",
			},
		},
	}

	got := composeResponse("formulários", results, model.LevelIntermediario)

	if !strings.Contains(got, "<!-- file_path: videos/Dica do professor.mp4 -->") {
		t.Error("missing video file_path marker")
	}
	if !strings.Contains(got, "📺 **Assista ao vídeo") {
		t.Error("missing video hint line")
	}
}

func TestComposeResponseExcerptSizeByLevel(t *testing.T) {
	long := strings.Repeat("a", 500)
	results := []model.SearchResult{textResult("text_a", "a", long)}

	beginner := composeResponse("tema", results, model.LevelIniciante)
	advanced := composeResponse("tema", results, model.LevelAvancado)

	if len(beginner) >= len(advanced) {
		t.Error("advanced level should quote longer excerpts than beginner")
	}
}

func TestExcerptSizeFor(t *testing.T) {
	tests := []struct {
		level string
		want  int
	}{
		{model.LevelIniciante, 150},
		{model.LevelIntermediario, 250},
		{model.LevelAvancado, 400},
		{"", 250},
	}
	for _, tt := range tests {
		if got := excerptSizeFor(tt.level); got != tt.want {
			t.Errorf("excerptSizeFor(%q) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestSplitParagraphs(t *testing.T) {
	sentence := strings.Repeat("x", 120) + ". "
	content := strings.Repeat(sentence, 5)

	paragraphs := splitParagraphs(content)
	if len(paragraphs) < 2 {
		t.Fatalf("expected content split into multiple paragraphs, got %d", len(paragraphs))
	}
	if splitParagraphs("") != nil {
		t.Error("empty content should produce no paragraphs")
	}
}

func TestDeriveMediaFlagsDefaults(t *testing.T) {
	s := NewAnalyzeService(nil, nil, nil, map[string]string{
		"video": "videos/Dica do professor.mp4",
		"audio": "audio/Dica do professor.mp3",
	})

	resp := &model.AnalyzeResponse{Response: "Assista ao vídeo sobre o tema."}
	s.deriveMediaFlags(resp)

	if !resp.HasVideoContent {
		t.Error("video mention should set HasVideoContent")
	}
	if resp.FilePath != "videos/Dica do professor.mp4" {
		t.Errorf("FilePath = %q, want the default video sample", resp.FilePath)
	}
	if resp.PrimaryMediaType != media.PrimaryTypeMixed {
		t.Errorf("PrimaryMediaType = %q, want mixed without explicit marker", resp.PrimaryMediaType)
	}
}

func TestDeriveMediaFlagsMarkerOverrides(t *testing.T) {
	s := NewAnalyzeService(nil, nil, nil, map[string]string{
		"video": "videos/Dica do professor.mp4",
	})

	resp := &model.AnalyzeResponse{
		Response: "Veja o vídeo.\n<!-- file_path: audio/Resumo.mp3 -->",
	}
	s.deriveMediaFlags(resp)

	if resp.FilePath != "audio/Resumo.mp3" {
		t.Errorf("explicit marker should override default sample, got %q", resp.FilePath)
	}
	if resp.PrimaryMediaType != media.PrimaryTypeAudio {
		t.Errorf("PrimaryMediaType = %q, want audio", resp.PrimaryMediaType)
	}
	if !resp.HasAudioContent {
		t.Error("marker classified as audio should set HasAudioContent")
	}
	if !resp.HasVideoContent {
		t.Error("video mention should still set HasVideoContent")
	}
}

func TestDeriveMediaFlagsNoMedia(t *testing.T) {
	s := NewAnalyzeService(nil, nil, nil, nil)

	resp := &model.AnalyzeResponse{Response: "Apenas texto corrido sobre o tema."}
	s.deriveMediaFlags(resp)

	if resp.HasVideoContent || resp.HasAudioContent || resp.HasImageContent {
		t.Error("plain text should not set media flags")
	}
	if resp.PrimaryMediaType != media.PrimaryTypeMixed {
		t.Errorf("PrimaryMediaType = %q, want mixed", resp.PrimaryMediaType)
	}
	if resp.FilePath != "" {
		t.Errorf("FilePath = %q, want empty", resp.FilePath)
	}
}

func TestRelatedTypeFor(t *testing.T) {
	tests := []struct {
		source   string
		fallback string
		want     string
	}{
		{"videos/Dica.mp4", "text", "video"},
		{"audio/Resumo.mp3", "text", "audio"},
		{"images/Grafico.png", "text", "image"},
		{"text/Apostila.pdf", "text", "pdf"},
		{"text/Apostila.txt", "json", "json"},
		{"", "", "text"},
	}
	for _, tt := range tests {
		if got := relatedTypeFor(tt.source, tt.fallback); got != tt.want {
			t.Errorf("relatedTypeFor(%q, %q) = %q, want %q", tt.source, tt.fallback, got, tt.want)
		}
	}
}

func TestToRelatedContentTruncation(t *testing.T) {
	long := strings.Repeat("é", 200)
	r := model.SearchResult{
		ID:             "text_doc",
		Type:           "text",
		ContentPreview: long,
		Metadata:       model.SearchResultMetadata{Title: "Doc", Source: "text/doc.txt"},
	}

	rc := toRelatedContent(r)
	if got := len([]rune(rc.ContentPreview)); got != relatedPreviewLength+3 {
		t.Errorf("preview length = %d runes, want %d plus ellipsis", got, relatedPreviewLength+3)
	}
	if !strings.HasSuffix(rc.ContentPreview, "...") {
		t.Error("truncated preview should end with ellipsis")
	}
}

func TestToRelatedContentTitleFallsBackToID(t *testing.T) {
	rc := toRelatedContent(model.SearchResult{ID: "text_sem_titulo", Type: "text"})
	if rc.Title != "text_sem_titulo" {
		t.Errorf("Title = %q, want the document id", rc.Title)
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("o que é html"); got != "O que é html" {
		t.Errorf("capitalize = %q", got)
	}
	if got := capitalize(""); got != "" {
		t.Errorf("capitalize empty = %q", got)
	}
	if got := capitalize("água"); got != "Água" {
		t.Errorf("capitalize accented = %q", got)
	}
}
