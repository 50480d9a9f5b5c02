package service

import (
	"strings"
	"testing"

	"aeducacao_backend/internal/model"
)

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"abcdef", 3, "abc"},
		{"abc", 10, "abc"},
		{"coração", 5, "coraç"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncateRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestToSearchResult(t *testing.T) {
	doc := model.Document{
		DocID:     "text_apostila",
		DocType:   model.DocTypeText,
		Title:     "Apostila",
		Content:   strings.Repeat("x", 500),
		Source:    "text/apostila.txt",
		SizeBytes: 500,
	}

	r := toSearchResult(doc)
	if r.ID != "text_apostila" {
		t.Errorf("ID = %q", r.ID)
	}
	if r.Type != "text" {
		t.Errorf("Type = %q, want text", r.Type)
	}
	if got := len([]rune(r.ContentPreview)); got != previewLength {
		t.Errorf("preview length = %d, want %d", got, previewLength)
	}
	if r.Metadata.Source != "text/apostila.txt" {
		t.Errorf("Source = %q", r.Metadata.Source)
	}
}

func TestToSearchResultFallsBackToTitle(t *testing.T) {
	doc := model.Document{DocID: "video_dica", DocType: model.DocTypeVideo, Title: "Dica do professor"}
	r := toSearchResult(doc)
	if r.ContentPreview != "Dica do professor" {
		t.Errorf("preview = %q, want the title", r.ContentPreview)
	}
}
