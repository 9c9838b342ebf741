package game

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 存储路径常量
const (
	leaderboardObject   = "leaderboard"
	leaderboardProperty = "scores"
)

// maxLocalEntries 本地最多保留的记录数
const maxLocalEntries = 100

// LocalScoreStore 基于 gdata 的本地排行榜
// gdataManager 为 nil 时退化为纯内存存储
// 提交可能来自后台 goroutine，内部加锁
type LocalScoreStore struct {
	gdataManager *gdata.Manager
	now          func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// NewLocalScoreStore 创建本地排行榜并加载已保存的记录
// 加载失败不是致命错误，以空榜开始
func NewLocalScoreStore(gdataManager *gdata.Manager) *LocalScoreStore {
	s := &LocalScoreStore{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := s.load(); err != nil {
		log.Printf("[LocalScoreStore] Warning: Failed to load leaderboard: %v (starting empty)", err)
	}
	return s
}

func (s *LocalScoreStore) load() error {
	if s.gdataManager == nil {
		return nil
	}
	if !s.gdataManager.ObjectPropExists(leaderboardObject, leaderboardProperty) {
		return nil
	}

	data, err := s.gdataManager.LoadObjectProp(leaderboardObject, leaderboardProperty)
	if err != nil {
		return fmt.Errorf("failed to load leaderboard: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	SortEntries(entries)
	s.entries = entries
	return nil
}

// SubmitScore 记录一次成绩并持久化
func (s *LocalScoreStore) SubmitScore(ctx context.Context, name string, score int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{Name: name, Score: score, RecordedAt: s.now()})
	SortEntries(s.entries)
	if len(s.entries) > maxLocalEntries {
		s.entries = s.entries[:maxLocalEntries]
	}

	if s.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(leaderboardObject, leaderboardProperty, data); err != nil {
		return fmt.Errorf("failed to save leaderboard: %w", err)
	}

	log.Printf("[LocalScoreStore] Saved score %d for %q", score, name)
	return nil
}

// FetchScores 返回排序后的记录副本
func (s *LocalScoreStore) FetchScores(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}
