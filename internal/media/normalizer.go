package media

import "strings"

// 媒体根目录下的已知子目录
var knownSubdirs = []string{"videos", "audio", "images", "text", "transcripts"}

// Normalizer 将后端响应中的文件路径解析为可访问的绝对URL。
// rootDir 是存储根标记（默认 processed_data），apiBaseURL 来自配置。
type Normalizer struct {
	apiBaseURL string
	rootDir    string
}

func NewNormalizer(apiBaseURL, rootDir string) *Normalizer {
	return &Normalizer{
		apiBaseURL: strings.TrimRight(apiBaseURL, "/"),
		rootDir:    strings.Trim(rootDir, "/"),
	}
}

// Resolve 规范化路径并拼出可服务的URL。空路径返回空串，绝对URL原样
// 返回，其余路径在必要时按扩展名推断子目录。不会失败：无法识别的
// 路径也会尽力给出URL。
//
// 注意：文件名里只带有 exercise/exercicio 字样的文件与普通文本一样落在
// text/ 子目录下，习题的区分只发生在 Classify 这一侧。
func (n *Normalizer) Resolve(rawPath string) string {
	if rawPath == "" {
		return ""
	}

	p := strings.TrimSpace(rawPath)
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}

	p = strings.ReplaceAll(p, "\\", "/")

	// 绝对文件系统路径：只保留根标记之后的部分
	marker := "/" + n.rootDir + "/"
	if i := strings.Index(p, marker); i >= 0 {
		p = p[i+len(marker):]
	}
	p = strings.TrimLeft(p, "/")
	p = strings.TrimPrefix(p, n.rootDir+"/")

	if !n.hasKnownPrefix(p) {
		p = inferSubdir(p) + "/" + lastSegment(p)
	}

	return n.apiBaseURL + "/" + n.rootDir + "/" + p
}

func (n *Normalizer) hasKnownPrefix(p string) bool {
	for _, subdir := range knownSubdirs {
		if strings.HasPrefix(p, subdir+"/") {
			return true
		}
	}
	return false
}

// inferSubdir 按扩展名推断子目录，未识别的扩展名归入 text
func inferSubdir(p string) string {
	switch ext := Ext(p); {
	case videoExts[ext]:
		return "videos"
	case audioExts[ext]:
		return "audio"
	case imageExts[ext]:
		return "images"
	default:
		return "text"
	}
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
