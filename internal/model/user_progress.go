package model

import "time"

// 用户级别与偏好格式取值沿用内容库的葡语词汇
const (
	LevelIniciante     = "iniciante"
	LevelIntermediario = "intermediário"
	LevelAvancado      = "avançado"

	FormatTexto  = "texto"
	FormatVideo  = "vídeo"
	FormatAudio  = "áudio"
	FormatImagem = "imagem"

	FeedbackPositivo = "positivo"
	FeedbackNegativo = "negativo"
)

// UserProgress 用户档案与学习进度
type UserProgress struct {
	Base
	UserID          string     `gorm:"size:64;uniqueIndex" json:"user_id"`
	Level           string     `gorm:"size:32;default:intermediário" json:"level"`
	PreferredFormat string     `gorm:"size:32;default:texto" json:"preferred_format"`
	Interests       StringCSV  `gorm:"size:1024" json:"interests"`
	Strengths       StringCSV  `gorm:"size:1024" json:"strengths"`
	Weaknesses      StringCSV  `gorm:"size:1024" json:"weaknesses"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
}

// Interaction 一次查询/响应交互，反馈事后附加
type Interaction struct {
	Base
	UserID          string `gorm:"size:64;index" json:"user_id"`
	QueryID         string `gorm:"size:64;index" json:"query_id"`
	Query           string `gorm:"type:text" json:"query"`
	Response        string `gorm:"type:longtext" json:"response"`
	Feedback        string `gorm:"size:32" json:"feedback,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
}
