package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/util"
)

func TestDocTypeByExt(t *testing.T) {
	tests := []struct {
		ext  string
		want model.DocType
	}{
		{"txt", model.DocTypeText},
		{"md", model.DocTypeText},
		{"pdf", model.DocTypePDF},
		{"json", model.DocTypeJSON},
		{"mp4", model.DocTypeVideo},
		{"webm", model.DocTypeVideo},
		{"mp3", model.DocTypeAudio},
		{"wav", model.DocTypeAudio},
		{"jpg", model.DocTypeImage},
		{"svg", model.DocTypeImage},
	}
	for _, tt := range tests {
		if got := docTypeByExt[tt.ext]; got != tt.want {
			t.Errorf("docTypeByExt[%q] = %q, want %q", tt.ext, got, tt.want)
		}
	}
	if _, ok := docTypeByExt["exe"]; ok {
		t.Error("exe must not be an indexable type")
	}
}

func TestSubdirByDocType(t *testing.T) {
	// 文本、PDF和JSON共用text子目录，媒体各有自己的目录
	for _, docType := range []model.DocType{model.DocTypeText, model.DocTypePDF, model.DocTypeJSON} {
		if got := subdirByDocType[docType]; got != "text" {
			t.Errorf("subdir for %q = %q, want text", docType, got)
		}
	}
	if subdirByDocType[model.DocTypeVideo] != "videos" {
		t.Error("video subdir should be videos")
	}
	if subdirByDocType[model.DocTypeAudio] != "audio" {
		t.Error("audio subdir should be audio")
	}
	if subdirByDocType[model.DocTypeImage] != "images" {
		t.Error("image subdir should be images")
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct{ ext, want string }{
		{"txt", "text/plain"},
		{"pdf", "application/pdf"},
		{"mp4", "video/mp4"},
		{"mp3", "audio/mpeg"},
		{"jpeg", "image/jpeg"},
		{"svg", "image/svg+xml"},
		{"bin", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := contentTypeFor(tt.ext); got != tt.want {
			t.Errorf("contentTypeFor(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestIndexUploadRejectsUnsupportedType(t *testing.T) {
	s := NewIndexerService(nil, nil)

	_, err := s.IndexUpload(context.Background(), "programa.exe", strings.NewReader("MZ"), 2)
	if err != util.ErrUnsupportedFileType {
		t.Errorf("err = %v, want ErrUnsupportedFileType", err)
	}
}

// 富化从上传落下的临时文件读取，和存储后端（本地目录或minio）无关
func TestEnrichReadsSpooledUpload(t *testing.T) {
	tmpPath, written, err := spoolUpload(strings.NewReader("conteúdo de teste"), "txt")
	if err != nil {
		t.Fatalf("spoolUpload: %v", err)
	}
	defer os.Remove(tmpPath)

	if want := int64(len("conteúdo de teste")); written != want {
		t.Errorf("written = %d, want %d", written, want)
	}

	s := NewIndexerService(nil, nil)
	doc := &model.Document{}
	if err := s.enrich(context.Background(), doc, model.DocTypeText, tmpPath); err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if doc.Content != "conteúdo de teste" {
		t.Errorf("Content = %q, want the spooled upload body", doc.Content)
	}
}
