package media

import "testing"

func newTestNormalizer() *Normalizer {
	return NewNormalizer("http://localhost:8080", "processed_data")
}

func TestResolveEmptyPath(t *testing.T) {
	n := newTestNormalizer()
	if got := n.Resolve(""); got != "" {
		t.Errorf("Resolve(\"\") = %q, want empty string", got)
	}
}

func TestResolveAbsoluteURLUnchanged(t *testing.T) {
	n := newTestNormalizer()
	urls := []string{
		"http://example.com/videos/a.mp4",
		"https://cdn.example.com/processed_data/audio/b.mp3",
	}
	for _, u := range urls {
		if got := n.Resolve(u); got != u {
			t.Errorf("Resolve(%q) = %q, want unchanged", u, got)
		}
	}
}

func TestResolveKnownSubdir(t *testing.T) {
	n := newTestNormalizer()
	got := n.Resolve("videos/Dica do professor.mp4")
	want := "http://localhost:8080/processed_data/videos/Dica do professor.mp4"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveStripsRootMarker(t *testing.T) {
	n := newTestNormalizer()
	got := n.Resolve("/home/app/backend/processed_data/audio/Aula.mp3")
	want := "http://localhost:8080/processed_data/audio/Aula.mp3"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolveInfersSubdirFromExtension(t *testing.T) {
	n := newTestNormalizer()
	tests := []struct {
		path string
		want string
	}{
		{"Aula.mp4", "http://localhost:8080/processed_data/videos/Aula.mp4"},
		{"Aula.mp3", "http://localhost:8080/processed_data/audio/Aula.mp3"},
		{"Grafico.png", "http://localhost:8080/processed_data/images/Grafico.png"},
		{"Apostila.pdf", "http://localhost:8080/processed_data/text/Apostila.pdf"},
		// 无法识别的扩展名退回text
		{"dados.bin", "http://localhost:8080/processed_data/text/dados.bin"},
	}
	for _, tt := range tests {
		if got := n.Resolve(tt.path); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

// 文件名仅提到exercise的文件与普通文本一样落在text/下；习题的识别
// 只发生在Classify一侧。行为刻意保留。
func TestResolveExerciseNameGoesToText(t *testing.T) {
	n := newTestNormalizer()
	got := n.Resolve("Exercicios.json")
	want := "http://localhost:8080/processed_data/text/Exercicios.json"
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
	if kind := Classify(got); kind != KindExercises {
		t.Errorf("Classify(%q) = %q, want exercises", got, kind)
	}
}

// 规范化后的视频URL必须被分类器独立判定为video
func TestResolveAndClassifyAgree(t *testing.T) {
	n := newTestNormalizer()
	for _, name := range []string{"a.mp4", "b.avi", "c.mov", "d.mkv", "e.webm"} {
		url := n.Resolve(name)
		if kind := Classify(url); kind != KindVideo {
			t.Errorf("Classify(Resolve(%q)) = %q, want video", name, kind)
		}
	}
}
