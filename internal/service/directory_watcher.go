package service

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"aeducacao_backend/internal/media"
	"aeducacao_backend/pkg/logger"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DirectoryWatcherService 监控内容目录，新出现的受支持文件自动送入
// 索引。fsnotify不递归，启动时逐个挂上子目录，运行中新建的目录同样
// 补挂。同一路径有5秒冷却，抑制编辑器分多次写入触发的重复索引。
type DirectoryWatcherService struct {
	Indexer  *IndexerService
	cooldown time.Duration

	watcher *fsnotify.Watcher
	done    chan struct{}

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

func NewDirectoryWatcherService(indexer *IndexerService) *DirectoryWatcherService {
	return &DirectoryWatcherService{
		Indexer:  indexer,
		cooldown: 5 * time.Second,
		done:     make(chan struct{}),
		lastSeen: map[string]time.Time{},
	}
}

// Start 创建并挂载各监控目录，然后启动事件循环
func (s *DirectoryWatcherService) Start(dirs []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	s.watcher = watcher

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Log.Warn("cannot create watched directory",
				zap.String("dir", dir), zap.Error(err))
			continue
		}
		if err := s.addRecursive(dir); err != nil {
			logger.Log.Warn("cannot watch directory",
				zap.String("dir", dir), zap.Error(err))
		}
	}

	go s.loop()
	logger.Log.Info("directory watcher started", zap.Strings("dirs", dirs))
	return nil
}

func (s *DirectoryWatcherService) Stop() {
	if s.watcher == nil {
		return
	}
	close(s.done)
	s.watcher.Close()
}

func (s *DirectoryWatcherService) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return s.watcher.Add(path)
		}
		return nil
	})
}

func (s *DirectoryWatcherService) loop() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					if err := s.addRecursive(event.Name); err != nil {
						logger.Log.Warn("cannot watch new subdirectory",
							zap.String("dir", event.Name), zap.Error(err))
					}
				}
				continue
			}
			if !s.shouldIndex(event.Name) {
				continue
			}
			// 索引放到独立的goroutine，避免ffprobe等慢操作堵住事件循环
			go s.indexFile(event.Name, info.Size())
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Log.Error("directory watcher error", zap.Error(err))
		}
	}
}

func (s *DirectoryWatcherService) shouldIndex(path string) bool {
	if _, ok := docTypeByExt[media.Ext(path)]; !ok {
		return false
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.lastSeen[path]; ok && now.Sub(last) < s.cooldown {
		return false
	}
	s.lastSeen[path] = now
	return true
}

func (s *DirectoryWatcherService) indexFile(path string, size int64) {
	f, err := os.Open(path)
	if err != nil {
		logger.Log.Warn("skipping unreadable watched file",
			zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	result, err := s.Indexer.IndexUpload(context.Background(), filepath.Base(path), f, size)
	if err != nil {
		logger.Log.Warn("automatic indexing failed",
			zap.String("path", path), zap.Error(err))
		return
	}
	logger.Log.Info("file indexed automatically",
		zap.String("path", path), zap.String("doc_id", result.DocID))
}
