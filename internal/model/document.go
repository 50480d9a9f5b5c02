package model

// DocType 索引文档类型
type DocType string

const (
	DocTypeText  DocType = "text"
	DocTypePDF   DocType = "pdf"
	DocTypeVideo DocType = "video"
	DocTypeAudio DocType = "audio"
	DocTypeImage DocType = "image"
	DocTypeJSON  DocType = "json"
)

// Document 已索引的学习资源内容
type Document struct {
	Base
	DocID           string  `gorm:"size:64;uniqueIndex" json:"doc_id"`
	DocType         DocType `gorm:"size:16;index" json:"doc_type"`
	Title           string  `gorm:"size:255" json:"title"`
	Content         string  `gorm:"type:longtext" json:"content"`
	Source          string  `gorm:"size:512" json:"source"`
	SizeBytes       int64   `json:"size_bytes"`
	Pages           int     `json:"pages"`
	DurationSeconds int     `json:"duration_seconds"`
}

// SearchResultMetadata 搜索结果附带的元数据子集
type SearchResultMetadata struct {
	Source          string `json:"source,omitempty"`
	Title           string `json:"title,omitempty"`
	SizeBytes       int64  `json:"size_bytes,omitempty"`
	Pages           int    `json:"pages,omitempty"`
	DurationSeconds int    `json:"duration_seconds,omitempty"`
}

// SearchResult 单条搜索结果，内容预览截断到300字符
type SearchResult struct {
	ID             string               `json:"id"`
	Type           string               `json:"type"`
	ContentPreview string               `json:"content_preview"`
	Metadata       SearchResultMetadata `json:"metadata"`
}

// SearchResponse GET /api/search 的响应体
type SearchResponse struct {
	Success        bool           `json:"success"`
	Query          string         `json:"query"`
	Count          int            `json:"count"`
	Results        []SearchResult `json:"results"`
	NeuralEnhanced bool           `json:"neural_enhanced"`
}
