package media

import (
	"fmt"
	"regexp"
	"strings"
)

// Reference 从响应文本中解析出的媒体引用。派生值，每次响应重新计算，
// 不做持久化。Kind 始终与 Classify 对 ResolvedURL 的判断一致。
type Reference struct {
	RawPath     string `json:"raw_path"`
	ResolvedURL string `json:"resolved_url"`
	Kind        Kind   `json:"kind"`
}

// 响应声明的主媒体类型取值（mixed 表示多种媒体并存）
const (
	PrimaryTypeVideo     = "video"
	PrimaryTypeAudio     = "audio"
	PrimaryTypeImage     = "image"
	PrimaryTypeText      = "text"
	PrimaryTypeExercises = "exercises"
	PrimaryTypeMixed     = "mixed"
)

var (
	markerRe      = regexp.MustCompile(`<!--\s*file_path:\s*(.+?)\s*-->`)
	// 文件名可以含空格（"Dica do professor.mp3"），捕获到行尾再去掉尾部空白
	labeledLineRe = regexp.MustCompile(`(?im)^\s*(?:arquivo|file)\s*:\s*(.+?)\s*$`)
)

// kindPattern 一条 (媒体类型, 正则) 规则。规则表按固定顺序求值，
// 优先级显式可测，避免散落的正则级联。
type kindPattern struct {
	kind Kind
	re   *regexp.Regexp
}

// Extractor 在自由文本响应中定位媒体文件引用
type Extractor struct {
	normalizer *Normalizer
	defaults   map[string]string // primary media type -> 默认示例文件
	patterns   []kindPattern
}

func NewExtractor(normalizer *Normalizer, defaults map[string]string) *Extractor {
	if defaults == nil {
		defaults = map[string]string{}
	}
	return &Extractor{
		normalizer: normalizer,
		defaults:   defaults,
		patterns:   buildPatternTable(normalizer.rootDir),
	}
}

// buildPatternTable 生成按媒体类型排序的规则表。每种类型四种形态：
// 带标签的括号形式、"Arquivo"+扩展名、根标记前缀路径、裸子目录路径。
func buildPatternTable(rootDir string) []kindPattern {
	type cluster struct {
		kind   Kind
		label  string
		exts   string
		subdir string
	}

	clusters := []cluster{
		{KindVideo, `v[íi]deo`, `mp4|avi|mov|mkv|webm`, "videos"},
		{KindAudio, `[áa]udio`, `mp3|wav|ogg|aac|m4a`, "audio"},
		{KindImage, `imagem|image`, `jpg|jpeg|png|gif|svg|webp`, "images"},
		{KindExercises, `exerc[íi]cios?|exercises?`, `json`, "text"},
		{KindMarkdown, `texto|text|documento|document`, `md|txt|pdf`, "text"},
	}

	var table []kindPattern
	for _, c := range clusters {
		table = append(table,
			// [Vídeo](caminho.mp4) / Vídeo: caminho.mp4 / Vídeo (caminho.mp4)
			kindPattern{c.kind, regexp.MustCompile(fmt.Sprintf(`(?i)\[?(?:%s)\]?\s*[:\(]\s*([^\s\)\(<>"']+\.(?:%s))\)?`, c.label, c.exts))},
			// Arquivo ... caminho.<ext>
			kindPattern{c.kind, regexp.MustCompile(fmt.Sprintf(`(?i)arquivo[^\n]*?([^\s<>"':\(\)]+\.(?:%s))`, c.exts))},
			// /.../<rootDir>/<subdir>/arquivo
			kindPattern{c.kind, regexp.MustCompile(fmt.Sprintf(`(?i)(?:/[^\s<>"']*)?/%s/(%s/[^\s<>"']+\.(?:%s))`, regexp.QuoteMeta(rootDir), c.subdir, c.exts))},
			// <subdir>/arquivo.<ext>
			kindPattern{c.kind, regexp.MustCompile(fmt.Sprintf(`(?i)\b(%s/[^\s<>"']+\.(?:%s))`, c.subdir, c.exts))},
		)
	}
	return table
}

// resolve 将原始路径包装成 Reference，Kind 由解析后的URL重新分类得出
func (e *Extractor) resolve(rawPath string) *Reference {
	url := e.normalizer.Resolve(rawPath)
	return &Reference{
		RawPath:     rawPath,
		ResolvedURL: url,
		Kind:        Classify(url),
	}
}

// Extract 按优先级在响应文本中定位一个媒体引用：HTML注释标记、
// 带标签的行、规则表、显式 filePath 字段、按声明类型的默认示例文件。
// 全部落空返回 nil，调用方此时不渲染任何媒体块。
func (e *Extractor) Extract(responseText, explicitPath, primaryType string) *Reference {
	if m := markerRe.FindStringSubmatch(responseText); m != nil {
		return e.resolve(m[1])
	}

	if m := labeledLineRe.FindStringSubmatch(responseText); m != nil {
		return e.resolve(m[1])
	}

	for _, p := range e.patterns {
		if m := p.re.FindStringSubmatch(responseText); m != nil {
			return e.resolve(m[1])
		}
	}

	if explicitPath != "" {
		return e.resolve(explicitPath)
	}

	if primaryType != "" && primaryType != PrimaryTypeMixed {
		if sample, ok := e.defaults[primaryType]; ok {
			return e.resolve(sample)
		}
	}

	return nil
}

// ExtractAll 处理 "mixed"（或未声明类型）的响应：没有注释标记时返回
// 全部默认媒体类型，这是对含混响应刻意采用的"全部展示"策略。其余
// 情况退化为单个 Extract 结果。
func (e *Extractor) ExtractAll(responseText, explicitPath, primaryType string) []Reference {
	mixed := primaryType == "" || primaryType == PrimaryTypeMixed
	if mixed && markerRe.FindStringSubmatch(responseText) == nil {
		var refs []Reference
		for _, t := range []string{PrimaryTypeVideo, PrimaryTypeAudio, PrimaryTypeImage, PrimaryTypeExercises} {
			if sample, ok := e.defaults[t]; ok {
				refs = append(refs, *e.resolve(sample))
			}
		}
		if len(refs) > 0 {
			return refs
		}
	}

	if ref := e.Extract(responseText, explicitPath, primaryType); ref != nil {
		return []Reference{*ref}
	}
	return nil
}

// FindMarker 返回响应文本中第一个 <!-- file_path: X --> 标记的路径
func FindMarker(responseText string) (string, bool) {
	if m := markerRe.FindStringSubmatch(responseText); m != nil {
		return m[1], true
	}
	return "", false
}

// HasKindMention 响应文本是否提到某类媒体（用于 has_*_content 标志）
func HasKindMention(responseText string, kind Kind) bool {
	lower := strings.ToLower(responseText)
	switch kind {
	case KindVideo:
		return strings.Contains(lower, "vídeo") || strings.Contains(lower, "video")
	case KindAudio:
		return strings.Contains(lower, "áudio") || strings.Contains(lower, "audio")
	case KindImage:
		return strings.Contains(lower, "imagem") || strings.Contains(lower, "image")
	default:
		return false
	}
}
