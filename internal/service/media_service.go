package service

import (
	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/media"
	"aeducacao_backend/internal/model"
)

// MediaResolution 媒体解析管线的端到端结果
type MediaResolution struct {
	References  []media.Reference  `json:"references"`
	RenderPlans []media.RenderPlan `json:"render_plans"`
}

// MediaService 封装提取→归一化→分类→渲染计划的完整管线
type MediaService struct {
	Normalizer *media.Normalizer
	Extractor  *media.Extractor
}

func NewMediaService(cfg *config.MediaConfig) *MediaService {
	normalizer := media.NewNormalizer(cfg.APIBaseURL, cfg.RootDir)
	return &MediaService{
		Normalizer: normalizer,
		Extractor:  media.NewExtractor(normalizer, cfg.DefaultSamples),
	}
}

// Resolve 对一个分析响应运行完整管线。没有任何媒体引用时两个切片
// 都为空，调用方不渲染媒体块。
func (s *MediaService) Resolve(resp *model.AnalyzeResponse) *MediaResolution {
	refs := s.Extractor.ExtractAll(resp.Response, resp.FilePath, resp.PrimaryMediaType)
	return &MediaResolution{
		References:  refs,
		RenderPlans: media.RenderReferences(refs),
	}
}

// ResolvePath 单个路径的归一化+分类+渲染计划
func (s *MediaService) ResolvePath(rawPath string) (*media.Reference, *media.RenderPlan) {
	url := s.Normalizer.Resolve(rawPath)
	kind := media.Classify(url)
	return &media.Reference{
		RawPath:     rawPath,
		ResolvedURL: url,
		Kind:        kind,
	}, media.Render(url, kind)
}
