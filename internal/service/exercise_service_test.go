package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"aeducacao_backend/internal/config"
)

func newTestExerciseService() *ExerciseService {
	mediaService := NewMediaService(&config.MediaConfig{
		APIBaseURL: "http://localhost:8080",
		RootDir:    "processed_data",
	})
	return NewExerciseService(mediaService)
}

func TestExerciseFetchPlainText(t *testing.T) {
	body := "1. O que significa HTML?\n" +
		"a) HyperText Markup Language\n" +
		"b) HighText Machine Language\n" +
		"Resposta: a\n" +
		"Explicação: HTML é a linguagem de marcação da web.\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer server.Close()

	s := newTestExerciseService()
	set, url, err := s.Fetch(context.Background(), server.URL+"/Exercicios.txt")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if url != server.URL+"/Exercicios.txt" {
		t.Errorf("url = %q", url)
	}
	if len(set.Exercises) != 1 {
		t.Fatalf("expected 1 exercise, got %d", len(set.Exercises))
	}

	ex := set.Exercises[0]
	if ex.Question != "O que significa HTML?" {
		t.Errorf("Question = %q", ex.Question)
	}
	if len(ex.Options) != 2 {
		t.Errorf("Options = %v, want 2 entries", ex.Options)
	}
	if ex.Answer != "a" {
		t.Errorf("Answer = %q, want a", ex.Answer)
	}
}

func TestExerciseFetchParseFailureKeepsURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>conteúdo sem exercícios</body></html>"))
	}))
	defer server.Close()

	s := newTestExerciseService()
	set, url, err := s.Fetch(context.Background(), server.URL+"/pagina.html")

	if set != nil {
		t.Error("expected nil set on parse failure")
	}
	if !IsParseFailure(err) {
		t.Errorf("expected parse failure, got %v", err)
	}
	if url == "" {
		t.Error("url must stay available as the fallback link")
	}
}

func TestExerciseFetchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := newTestExerciseService()
	_, _, err := s.Fetch(context.Background(), server.URL+"/sumiu.txt")
	if err == nil {
		t.Fatal("expected error for HTTP 404")
	}
	if IsParseFailure(err) {
		t.Error("HTTP failure must not look like a parse failure")
	}
}
