package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"aeducacao_backend/pkg/logger"

	"go.uber.org/zap"
)

// PerformanceTestRequest POST /api/admin/performance-test 的请求体
type PerformanceTestRequest struct {
	TestDir  string `json:"test_dir"`
	APIURL   string `json:"api_url"`
	TestType string `json:"test_type"` // all, batch, realtime, api
}

// BatchIndexingResult 批量索引测试结果
type BatchIndexingResult struct {
	NumFiles     int     `json:"num_files"`
	ElapsedTime  float64 `json:"elapsed_time"`
	IndexingRate float64 `json:"indexing_rate"`
	Success      bool    `json:"success"`
}

// RealtimeIndexingResult 逐文件实时索引测试结果
type RealtimeIndexingResult struct {
	NumFiles          int     `json:"num_files"`
	TotalTime         float64 `json:"total_time"`
	AvgProcessingTime float64 `json:"avg_processing_time"`
	Interval          float64 `json:"interval"`
}

// APIResponseResult /api/analyze 响应时间采样结果
type APIResponseResult struct {
	NumQueries      int     `json:"num_queries"`
	AvgResponseTime float64 `json:"avg_response_time"`
	MinResponseTime float64 `json:"min_response_time"`
	MaxResponseTime float64 `json:"max_response_time"`
}

// PerformanceReport 完整的性能报告
type PerformanceReport struct {
	BatchIndexing    *BatchIndexingResult    `json:"batch_indexing,omitempty"`
	RealtimeIndexing *RealtimeIndexingResult `json:"realtime_indexing,omitempty"`
	APIResponse      *APIResponseResult      `json:"api_response,omitempty"`
	SystemInfo       map[string]interface{}  `json:"system_info"`
	Timestamp        string                  `json:"timestamp"`
}

var sampleQueries = []string{
	"O que é HTML?",
	"Como funciona a aprendizagem adaptativa?",
	"Explique o conceito de algoritmos de recomendação",
	"Quais são os benefícios da educação personalizada?",
	"Técnicas de análise de dados em educação",
	"Como criar tabelas em HTML?",
	"JavaScript para iniciantes",
	"Estruturas de repetição em programação",
	"Métodos de avaliação em educação online",
	"Inteligência artificial aplicada ao ensino",
}

// PerformanceService 管理端的索引与API压测：生成合成文件跑批量/
// 逐个索引，并对 /api/analyze 做响应时间采样
type PerformanceService struct {
	Indexer *IndexerService
	Client  *http.Client
}

func NewPerformanceService(indexer *IndexerService) *PerformanceService {
	return &PerformanceService{
		Indexer: indexer,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Run 按请求的测试类型执行并汇总报告
func (s *PerformanceService) Run(ctx context.Context, req *PerformanceTestRequest) (*PerformanceReport, error) {
	if req.TestDir == "" {
		req.TestDir = filepath.Join(os.TempDir(), "aeducacao_test")
	}
	if req.TestType == "" {
		req.TestType = "all"
	}

	if err := os.MkdirAll(req.TestDir, 0755); err != nil {
		return nil, err
	}

	report := &PerformanceReport{
		SystemInfo: map[string]interface{}{
			"cpu_count": runtime.NumCPU(),
			"platform":  runtime.GOOS,
		},
		Timestamp: time.Now().Format("2006-01-02 15:04:05"),
	}

	if req.TestType == "all" || req.TestType == "batch" {
		result, err := s.runBatch(ctx, req.TestDir, 50)
		if err != nil {
			return nil, err
		}
		report.BatchIndexing = result
	}

	if req.TestType == "all" || req.TestType == "realtime" {
		result, err := s.runRealtime(ctx, req.TestDir, 20, 100*time.Millisecond)
		if err != nil {
			return nil, err
		}
		report.RealtimeIndexing = result
	}

	if (req.TestType == "all" || req.TestType == "api") && req.APIURL != "" {
		report.APIResponse = s.runAPISampling(ctx, req.APIURL, 10)
	}

	return report, nil
}

// runBatch 生成一批合成文件后整目录索引一次
func (s *PerformanceService) runBatch(ctx context.Context, testDir string, numFiles int) (*BatchIndexingResult, error) {
	if err := clearDir(testDir); err != nil {
		return nil, err
	}

	for i := 0; i < numFiles; i++ {
		if _, err := generateSyntheticFile(testDir, 10); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	results, err := s.Indexer.IndexDirectory(ctx, testDir)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		logger.Log.Error("batch indexing test failed", zap.Error(err))
		return &BatchIndexingResult{NumFiles: numFiles, ElapsedTime: elapsed}, nil
	}

	rate := 0.0
	if elapsed > 0 {
		rate = float64(numFiles) / elapsed
	}

	return &BatchIndexingResult{
		NumFiles:     numFiles,
		ElapsedTime:  elapsed,
		IndexingRate: rate,
		Success:      len(results) > 0,
	}, nil
}

// runRealtime 按固定间隔生成并立即索引每个文件
func (s *PerformanceService) runRealtime(ctx context.Context, testDir string, numFiles int, interval time.Duration) (*RealtimeIndexingResult, error) {
	start := time.Now()

	for i := 0; i < numFiles; i++ {
		path, err := generateSyntheticFile(testDir, 10)
		if err != nil {
			return nil, err
		}

		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		info, _ := f.Stat()
		if _, err := s.Indexer.IndexUpload(ctx, filepath.Base(path), f, info.Size()); err != nil {
			logger.Log.Warn("realtime indexing sample failed",
				zap.String("path", path), zap.Error(err))
		}
		f.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}

	total := time.Since(start).Seconds()
	return &RealtimeIndexingResult{
		NumFiles:          numFiles,
		TotalTime:         total,
		AvgProcessingTime: total / float64(numFiles),
		Interval:          interval.Seconds(),
	}, nil
}

// runAPISampling 轮流组合级别和格式向 /api/analyze 发送样例查询
func (s *PerformanceService) runAPISampling(ctx context.Context, apiURL string, numQueries int) *APIResponseResult {
	levels := []string{"iniciante", "intermediário", "avançado"}
	formats := []string{"texto", "vídeo", "imagem"}

	var times []float64
	for i := 0; i < numQueries; i++ {
		body, _ := json.Marshal(map[string]string{
			"query":            sampleQueries[i%len(sampleQueries)],
			"user_level":       levels[i%len(levels)],
			"preferred_format": formats[i%len(formats)],
		})

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/analyze", bytes.NewReader(body))
		if err != nil {
			continue
		}
		httpReq.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := s.Client.Do(httpReq)
		if err != nil {
			logger.Log.Warn("api sampling request failed", zap.Error(err))
			continue
		}
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			times = append(times, time.Since(start).Seconds())
		}
	}

	if len(times) == 0 {
		return &APIResponseResult{}
	}

	sum, min, max := 0.0, times[0], times[0]
	for _, t := range times {
		sum += t
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}

	return &APIResponseResult{
		NumQueries:      len(times),
		AvgResponseTime: sum / float64(len(times)),
		MinResponseTime: min,
		MaxResponseTime: max,
	}
}

const syntheticAlphabet = "abcdefghijklmnopqrstuvwxyz"

// generateSyntheticFile 随机生成txt或json测试文件，返回路径
func generateSyntheticFile(dir string, sizeKB int) (string, error) {
	name := make([]byte, 8)
	for i := range name {
		name[i] = syntheticAlphabet[rand.Intn(len(syntheticAlphabet))]
	}

	if rand.Intn(2) == 0 {
		path := filepath.Join(dir, string(name)+".txt")
		return path, os.WriteFile(path, randomText(sizeKB*1024), 0644)
	}

	path := filepath.Join(dir, string(name)+".json")
	data, err := json.MarshalIndent(map[string]interface{}{
		"title":   "Exemplo de Conteúdo Educacional",
		"topic":   "Aprendizagem Adaptativa",
		"content": string(randomText(sizeKB * 512)),
		"metadata": map[string]interface{}{
			"author": "Teste de Performance",
			"date":   time.Now().Format("2006-01-02"),
			"tags":   []string{"teste", "performance", "indexação"},
		},
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, data, 0644)
}

func randomText(n int) []byte {
	const chars = syntheticAlphabet + "ABCDEFGHIJKLMNOPQRSTUVWXYZ \n\t"
	out := make([]byte, n)
	for i := range out {
		out[i] = chars[rand.Intn(len(chars))]
	}
	return out
}

func clearDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("falha ao limpar diretório de teste: %w", err)
		}
	}
	return nil
}
