package model

// QueryRequest POST /api/analyze 的请求体
type QueryRequest struct {
	Query            string `json:"query" binding:"required"`
	UserLevel        string `json:"user_level"`
	PreferredFormat  string `json:"preferred_format"`
	UserID           string `json:"user_id"`
	UseNeuralNetwork bool   `json:"use_neural_network"`
}

// RelatedContent 与查询相关的内容预览（150字符截断）
type RelatedContent struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Type           string `json:"type"`
	ContentPreview string `json:"content_preview"`
	Source         string `json:"source,omitempty"`
}

// AnalyzeResponse POST /api/analyze 的响应体。接收方不再修改已生成的
// 响应文本，仅允许事后附加反馈状态。
type AnalyzeResponse struct {
	Success          bool             `json:"success"`
	UserID           string           `json:"user_id"`
	QueryID          string           `json:"query_id,omitempty"`
	Response         string           `json:"response"`
	RelatedContent   []RelatedContent `json:"related_content"`
	NeuralEnhanced   bool             `json:"neural_enhanced"`
	HasVideoContent  bool             `json:"has_video_content"`
	HasAudioContent  bool             `json:"has_audio_content"`
	HasImageContent  bool             `json:"has_image_content"`
	FilePath         string           `json:"file_path,omitempty"`
	PrimaryMediaType string           `json:"primary_media_type,omitempty"`
}

// FeedbackRequest POST /api/feedback 的请求体
type FeedbackRequest struct {
	UserID   string `json:"user_id" binding:"required"`
	QueryID  string `json:"query_id" binding:"required"`
	Feedback string `json:"feedback" binding:"required"`
}
