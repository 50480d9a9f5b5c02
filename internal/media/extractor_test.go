package media

import "testing"

func testDefaults() map[string]string {
	return map[string]string{
		PrimaryTypeVideo:     "videos/Dica do professor.mp4",
		PrimaryTypeAudio:     "audio/Dica do professor.mp3",
		PrimaryTypeImage:     "images/Infografico-1.jpg",
		PrimaryTypeExercises: "text/Exercicios.json",
		PrimaryTypeText:      "text/Apresentacao.txt",
	}
}

func newTestExtractor() *Extractor {
	return NewExtractor(newTestNormalizer(), testDefaults())
}

func TestExtractCommentMarker(t *testing.T) {
	e := newTestExtractor()
	text := "Veja o material.\n<!-- file_path: videos/x.mp4 -->\nBom estudo."

	ref := e.Extract(text, "", "")
	if ref == nil {
		t.Fatal("expected a reference, got nil")
	}
	if ref.RawPath != "videos/x.mp4" {
		t.Errorf("RawPath = %q, want videos/x.mp4", ref.RawPath)
	}
	if ref.Kind != KindVideo {
		t.Errorf("Kind = %q, want video", ref.Kind)
	}
}

// 注释标记优先于冲突的Arquivo行
func TestExtractMarkerBeatsLabeledLine(t *testing.T) {
	e := newTestExtractor()
	text := "Arquivo: audio/outro.mp3\n<!-- file_path: videos/x.mp4 -->"

	ref := e.Extract(text, "", "")
	if ref == nil || ref.RawPath != "videos/x.mp4" {
		t.Fatalf("ref = %+v, want marker path videos/x.mp4", ref)
	}
}

func TestExtractLabeledLine(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Arquivo: audio/Aula.mp3", "", "")
	if ref == nil {
		t.Fatal("expected a reference, got nil")
	}
	if ref.RawPath != "audio/Aula.mp3" {
		t.Errorf("RawPath = %q, want audio/Aula.mp3", ref.RawPath)
	}
	if ref.Kind != KindAudio {
		t.Errorf("Kind = %q, want audio", ref.Kind)
	}
}

// 文件名含空格时必须整行捕获，不能只截到最后一个词
func TestExtractLabeledLineWithSpacedFilename(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Arquivo: audio/Dica do professor.mp3", "", "")
	if ref == nil {
		t.Fatal("expected a reference, got nil")
	}
	if ref.RawPath != "audio/Dica do professor.mp3" {
		t.Errorf("RawPath = %q, want audio/Dica do professor.mp3", ref.RawPath)
	}
	if ref.Kind != KindAudio {
		t.Errorf("Kind = %q, want audio", ref.Kind)
	}
}

func TestExtractLabeledLineTrimsTrailingSpace(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Arquivo: text/Plano de aula.pdf  \nBom estudo.", "", "")
	if ref == nil || ref.RawPath != "text/Plano de aula.pdf" {
		t.Fatalf("ref = %+v, want text/Plano de aula.pdf", ref)
	}
}

func TestExtractPatternTable(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		name string
		text string
		want string
		kind Kind
	}{
		{"labeled parenthetical", "Assista o vídeo (videos/aula1.mp4) antes de começar.", "videos/aula1.mp4", KindVideo},
		{"bare subdir video", "Material em videos/intro.webm disponível.", "videos/intro.webm", KindVideo},
		{"bare subdir audio", "Ouça audio/resumo.mp3 depois.", "audio/resumo.mp3", KindAudio},
		{"root prefixed", "Fonte: /srv/app/processed_data/images/mapa.png aqui.", "images/mapa.png", KindImage},
		// 规则表按类型顺序求值：video优先于audio
		{"video before audio", "Temos videos/a.mp4 e audio/b.mp3.", "videos/a.mp4", KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := e.Extract(tt.text, "", "")
			if ref == nil {
				t.Fatal("expected a reference, got nil")
			}
			if ref.RawPath != tt.want {
				t.Errorf("RawPath = %q, want %q", ref.RawPath, tt.want)
			}
			if ref.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", ref.Kind, tt.kind)
			}
		})
	}
}

func TestExtractExplicitPathFallback(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Nada de mídia neste texto.", "images/extra.png", "")
	if ref == nil || ref.RawPath != "images/extra.png" {
		t.Fatalf("ref = %+v, want explicit file path", ref)
	}
}

func TestExtractDefaultSample(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Nada de referências aqui.", "", PrimaryTypeAudio)
	if ref == nil {
		t.Fatal("expected default sample reference")
	}
	if ref.RawPath != "audio/Dica do professor.mp3" {
		t.Errorf("RawPath = %q, want the audio default sample", ref.RawPath)
	}
}

func TestExtractNothing(t *testing.T) {
	e := NewExtractor(newTestNormalizer(), nil)
	if ref := e.Extract("Sem nenhuma referência.", "", ""); ref != nil {
		t.Errorf("expected nil reference, got %+v", ref)
	}
}

func TestExtractAllMixedPolicy(t *testing.T) {
	e := newTestExtractor()
	refs := e.ExtractAll("Conteúdo variado sem marcador.", "", PrimaryTypeMixed)
	if len(refs) != 4 {
		t.Fatalf("expected 4 default references for mixed response, got %d", len(refs))
	}
	wantKinds := []Kind{KindVideo, KindAudio, KindImage, KindExercises}
	for i, want := range wantKinds {
		if refs[i].Kind != want {
			t.Errorf("refs[%d].Kind = %q, want %q", i, refs[i].Kind, want)
		}
	}
}

func TestExtractAllMixedWithMarkerWins(t *testing.T) {
	e := newTestExtractor()
	refs := e.ExtractAll("<!-- file_path: videos/x.mp4 -->", "", PrimaryTypeMixed)
	if len(refs) != 1 || refs[0].RawPath != "videos/x.mp4" {
		t.Fatalf("refs = %+v, want single marker reference", refs)
	}
}

// 端到端：Arquivo行 → 提取 → 规范化 → 分类 → 渲染计划
func TestEndToEndAudioScenario(t *testing.T) {
	e := newTestExtractor()
	ref := e.Extract("Arquivo: audio/Aula.mp3", "", "")
	if ref == nil {
		t.Fatal("expected a reference")
	}
	wantURL := "http://localhost:8080/processed_data/audio/Aula.mp3"
	if ref.ResolvedURL != wantURL {
		t.Errorf("ResolvedURL = %q, want %q", ref.ResolvedURL, wantURL)
	}
	plan := Render(ref.ResolvedURL, ref.Kind)
	if plan == nil || plan.Widget != WidgetAudioPlayer {
		t.Fatalf("plan = %+v, want audio-player widget", plan)
	}
	if plan.Source != wantURL {
		t.Errorf("plan.Source = %q, want %q", plan.Source, wantURL)
	}
}
