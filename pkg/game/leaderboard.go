package game

import (
	"context"
	"errors"
	"sort"
	"time"
)

// ErrNotConfigured 远程排行榜未配置(URL 或密钥为空或仍是占位符)
var ErrNotConfigured = errors.New("leaderboard not configured")

// Entry 排行榜中的一条记录
type Entry struct {
	Name       string    `yaml:"name" json:"name"`
	Score      int       `yaml:"score" json:"score"`
	RecordedAt time.Time `yaml:"recordedAt" json:"created_at"`
}

// ScoreStore 排行榜存储契约
// 引擎只依赖这两个操作，具体存储可以是本地 gdata 或远程 REST
type ScoreStore interface {
	SubmitScore(ctx context.Context, name string, score int) error
	FetchScores(ctx context.Context) ([]Entry, error)
}

// SortEntries 按分数降序排列，同分时较新的记录在前
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})
}

// recordedAtLayout 排行榜日期列格式，例如 "Jan 2 15:04"
const recordedAtLayout = "Jan 2 15:04"

// FormatRecordedAt 按本地时区格式化记录时间，零值返回空串
func FormatRecordedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(recordedAtLayout)
}

// FetchResult 异步拉取排行榜的结果
type FetchResult struct {
	Entries []Entry
	Err     error
}

// FetchScoresAsync 在独立 goroutine 中拉取排行榜
// 返回的 channel 带一个缓冲，恰好收到一个结果后关闭；调用方可在帧循环中非阻塞地读取
func FetchScoresAsync(ctx context.Context, store ScoreStore) <-chan FetchResult {
	ch := make(chan FetchResult, 1)
	go func() {
		defer close(ch)
		entries, err := store.FetchScores(ctx)
		ch <- FetchResult{Entries: entries, Err: err}
	}()
	return ch
}
