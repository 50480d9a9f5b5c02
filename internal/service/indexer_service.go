package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aeducacao_backend/internal/media"
	"aeducacao_backend/internal/model"
	"aeducacao_backend/internal/repository"
	"aeducacao_backend/internal/util"
	"aeducacao_backend/pkg/logger"
	"aeducacao_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// IndexerService 把上传的学习资源归入内容库并建立可搜索的文档记录。
// 上传流先落到临时文件，富化（读全文、ffprobe）从临时文件读取，与
// 存储后端无关；视频额外抽出mp3音轨放进音频目录。
type IndexerService struct {
	DocumentRepo *repository.DocumentRepository
	Storage      *StorageService
}

func NewIndexerService(documentRepo *repository.DocumentRepository, storage *StorageService) *IndexerService {
	return &IndexerService{
		DocumentRepo: documentRepo,
		Storage:      storage,
	}
}

// IndexResult 单个文件索引的结果
type IndexResult struct {
	DocID    string `json:"doc_id"`
	DocType  string `json:"doc_type"`
	Filename string `json:"filename"`
	Source   string `json:"source"`
	Chunks   int    `json:"chunks"`
}

var docTypeByExt = map[string]model.DocType{
	"txt":  model.DocTypeText,
	"md":   model.DocTypeText,
	"csv":  model.DocTypeText,
	"pdf":  model.DocTypePDF,
	"json": model.DocTypeJSON,
	"mp4":  model.DocTypeVideo,
	"avi":  model.DocTypeVideo,
	"mov":  model.DocTypeVideo,
	"mkv":  model.DocTypeVideo,
	"webm": model.DocTypeVideo,
	"mp3":  model.DocTypeAudio,
	"wav":  model.DocTypeAudio,
	"ogg":  model.DocTypeAudio,
	"m4a":  model.DocTypeAudio,
	"jpg":  model.DocTypeImage,
	"jpeg": model.DocTypeImage,
	"png":  model.DocTypeImage,
	"gif":  model.DocTypeImage,
	"webp": model.DocTypeImage,
	"svg":  model.DocTypeImage,
}

// subdirByDocType 内容库内各类资源的固定子目录
var subdirByDocType = map[model.DocType]string{
	model.DocTypeText:  "text",
	model.DocTypePDF:   "text",
	model.DocTypeJSON:  "text",
	model.DocTypeVideo: "videos",
	model.DocTypeAudio: "audio",
	model.DocTypeImage: "images",
}

// IndexUpload 索引一个上传的文件，返回入库结果
func (s *IndexerService) IndexUpload(ctx context.Context, filename string, reader io.Reader, size int64) (*IndexResult, error) {
	ext := media.Ext(filename)
	docType, ok := docTypeByExt[ext]
	if !ok {
		monitoring.IndexedFilesCounter.WithLabelValues("unknown", "rejected").Inc()
		return nil, util.ErrUnsupportedFileType
	}

	tmpPath, written, err := spoolUpload(reader, ext)
	if err != nil {
		monitoring.IndexedFilesCounter.WithLabelValues(string(docType), "error").Inc()
		return nil, err
	}
	defer os.Remove(tmpPath)
	if size <= 0 {
		size = written
	}

	relPath := subdirByDocType[docType] + "/" + filepath.Base(filename)
	source, err := s.Storage.UploadFile(ctx, relPath, tmpPath, contentTypeFor(ext))
	if err != nil {
		monitoring.IndexedFilesCounter.WithLabelValues(string(docType), "error").Inc()
		return nil, err
	}

	doc := &model.Document{
		DocID:     fmt.Sprintf("%s_%s", docType, filepath.Base(filename)),
		DocType:   docType,
		Title:     strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)),
		Source:    source,
		SizeBytes: size,
	}

	if err := s.enrich(ctx, doc, docType, tmpPath); err != nil {
		logger.Log.Warn("failed to enrich indexed document",
			zap.String("doc_id", doc.DocID), zap.Error(err))
	}

	if err := s.DocumentRepo.Upsert(doc); err != nil {
		monitoring.IndexedFilesCounter.WithLabelValues(string(docType), "error").Inc()
		return nil, err
	}

	monitoring.IndexedFilesCounter.WithLabelValues(string(docType), "indexed").Inc()
	logger.Log.Info("document indexed",
		zap.String("doc_id", doc.DocID),
		zap.String("doc_type", string(docType)),
		zap.Int64("size_bytes", size))

	return &IndexResult{
		DocID:    doc.DocID,
		DocType:  string(docType),
		Filename: filepath.Base(filename),
		Source:   source,
		Chunks:   1,
	}, nil
}

// spoolUpload 把上传流落到临时文件，富化与存储上传都从这里读取
func spoolUpload(reader io.Reader, ext string) (string, int64, error) {
	tmp, err := os.CreateTemp("", "aedu-upload-*."+ext)
	if err != nil {
		return "", 0, err
	}

	written, err := io.Copy(tmp, reader)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, err
	}
	return tmp.Name(), written, nil
}

// enrich 按类型补充全文内容和媒体元数据
func (s *IndexerService) enrich(ctx context.Context, doc *model.Document, docType model.DocType, localPath string) error {
	switch docType {
	case model.DocTypeText, model.DocTypeJSON:
		data, err := os.ReadFile(localPath)
		if err != nil {
			return err
		}
		doc.Content = string(data)

	case model.DocTypePDF:
		// PDF不做文本抽取，只按元数据入库
		if info, err := os.Stat(localPath); err == nil {
			doc.SizeBytes = info.Size()
		}

	case model.DocTypeVideo:
		info, err := util.ProbeMedia(localPath)
		if err != nil {
			return err
		}
		doc.DurationSeconds = int(info.Duration)
		doc.SizeBytes = info.Size

		// 抽出音轨放入音频目录，供偏好音频格式的用户复用
		audioTmp := strings.TrimSuffix(localPath, filepath.Ext(localPath)) + ".mp3"
		if err := util.ExtractAudioTrack(localPath, audioTmp); err != nil {
			logger.Log.Warn("audio track extraction failed",
				zap.String("video", localPath), zap.Error(err))
			return nil
		}
		defer os.Remove(audioTmp)
		if _, err := s.Storage.UploadFile(ctx, "audio/"+doc.Title+".mp3", audioTmp, "audio/mpeg"); err != nil {
			logger.Log.Warn("audio track upload failed",
				zap.String("doc_id", doc.DocID), zap.Error(err))
		}

	case model.DocTypeAudio:
		info, err := util.ProbeMedia(localPath)
		if err != nil {
			return err
		}
		doc.DurationSeconds = int(info.Duration)
		doc.SizeBytes = info.Size

	case model.DocTypeImage:
		if info, err := os.Stat(localPath); err == nil {
			doc.SizeBytes = info.Size()
		}
	}
	return nil
}

// IndexDirectory 批量索引目录下的全部受支持文件，返回每个文件的结果
func (s *IndexerService) IndexDirectory(ctx context.Context, dir string) ([]IndexResult, error) {
	var results []IndexResult

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ok := docTypeByExt[media.Ext(info.Name())]; !ok {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			logger.Log.Warn("skipping unreadable file", zap.String("path", path), zap.Error(err))
			return nil
		}
		defer f.Close()

		result, err := s.IndexUpload(ctx, info.Name(), f, info.Size())
		if err != nil {
			logger.Log.Warn("skipping file that failed to index",
				zap.String("path", path), zap.Error(err))
			return nil
		}
		results = append(results, *result)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func contentTypeFor(ext string) string {
	switch ext {
	case "txt", "md":
		return "text/plain"
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	case "json":
		return "application/json"
	case "mp4":
		return "video/mp4"
	case "avi", "mov", "mkv", "webm":
		return "video/" + ext
	case "mp3":
		return "audio/mpeg"
	case "wav", "ogg", "m4a":
		return "audio/" + ext
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png", "gif", "webp":
		return "image/" + ext
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
