package media

import (
	"path"
	"strings"
)

// Kind 媒体类型
type Kind string

const (
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindImage     Kind = "image"
	KindMarkdown  Kind = "markdown"
	KindExercises Kind = "exercises"
	KindUnknown   Kind = "unknown"
)

var (
	videoExts = map[string]bool{"mp4": true, "avi": true, "mov": true, "mkv": true, "webm": true}
	audioExts = map[string]bool{"mp3": true, "wav": true, "ogg": true, "aac": true, "m4a": true}
	imageExts = map[string]bool{"jpg": true, "jpeg": true, "png": true, "gif": true, "svg": true, "webp": true}
	textExts  = map[string]bool{"md": true, "txt": true, "pdf": true}

	// 文件名中出现任一变体即视为习题资源
	exerciseTokens = []string{"exercicio", "exercício", "exercise"}
)

// Ext 返回小写的文件扩展名，不带点
func Ext(p string) string {
	ext := path.Ext(p)
	if ext == "" {
		return ""
	}
	// 丢弃可能跟在扩展名后面的查询串
	if i := strings.IndexAny(ext, "?#"); i >= 0 {
		ext = ext[:i]
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

func hasExerciseToken(p string) bool {
	lower := strings.ToLower(p)
	for _, token := range exerciseTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// Classify 按扩展名和路径片段将路径映射为媒体类型。规则按顺序匹配，
// 首个命中生效；空输入返回 unknown。纯函数，永不panic。
func Classify(p string) Kind {
	if p == "" {
		return KindUnknown
	}

	lower := strings.ToLower(p)
	ext := Ext(lower)

	switch {
	case videoExts[ext] || strings.Contains(lower, "/videos/"):
		return KindVideo
	case audioExts[ext] || strings.Contains(lower, "/audio/"):
		return KindAudio
	case imageExts[ext] || strings.Contains(lower, "/images/"):
		return KindImage
	case ext == "json" || hasExerciseToken(lower):
		return KindExercises
	case textExts[ext] || strings.Contains(lower, "/text/"):
		return KindMarkdown
	default:
		return KindUnknown
	}
}
