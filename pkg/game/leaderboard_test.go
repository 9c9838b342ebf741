package game

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSortEntries 分数降序，同分按时间降序
func TestSortEntries(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "a", Score: 3, RecordedAt: t0},
		{Name: "b", Score: 7, RecordedAt: t0},
		{Name: "c", Score: 3, RecordedAt: t0.Add(time.Minute)},
		{Name: "d", Score: 10, RecordedAt: t0.Add(-time.Hour)},
		{Name: "e", Score: 0, RecordedAt: t0},
	}

	SortEntries(entries)

	want := []string{"d", "b", "c", "a", "e"}
	for i, name := range want {
		if entries[i].Name != name {
			t.Errorf("entries[%d] = %s, want %s", i, entries[i].Name, name)
		}
	}
}

// stubStore 可控的 ScoreStore
type stubStore struct {
	submitErr error
	fetchErr  error
	entries   []Entry
	delay     time.Duration
	submitted []Entry
}

func (s *stubStore) SubmitScore(ctx context.Context, name string, score int) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if s.submitErr != nil {
		return s.submitErr
	}
	s.submitted = append(s.submitted, Entry{Name: name, Score: score})
	return nil
}

func (s *stubStore) FetchScores(ctx context.Context) ([]Entry, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.entries, nil
}

// TestFetchScoresAsync 异步拉取恰好返回一个结果后关闭
func TestFetchScoresAsync(t *testing.T) {
	store := &stubStore{entries: []Entry{{Name: "x", Score: 1}}}
	ch := FetchScoresAsync(context.Background(), store)

	res, ok := <-ch
	if !ok {
		t.Fatal("channel closed without a result")
	}
	if res.Err != nil || len(res.Entries) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after the result")
	}
}

// TestFetchScoresAsyncError 错误原样返回
func TestFetchScoresAsyncError(t *testing.T) {
	want := errors.New("boom")
	res := <-FetchScoresAsync(context.Background(), &stubStore{fetchErr: want})
	if !errors.Is(res.Err, want) {
		t.Errorf("Err = %v, want %v", res.Err, want)
	}
}

// TestFallbackScoreStore 本地始终保存，远程失败时拉取退回本地
func TestFallbackScoreStore(t *testing.T) {
	ctx := context.Background()
	local := NewLocalScoreStore(nil)
	remoteErr := errors.New("network down")
	remote := &stubStore{submitErr: remoteErr, fetchErr: remoteErr}
	store := NewFallbackScoreStore(local, remote)

	if err := store.SubmitScore(ctx, "Dory", 9); !errors.Is(err, remoteErr) {
		t.Errorf("SubmitScore err = %v, want remote error", err)
	}

	entries, err := store.FetchScores(ctx)
	if !errors.Is(err, remoteErr) {
		t.Errorf("FetchScores err = %v, want remote error", err)
	}
	if len(entries) != 1 || entries[0].Name != "Dory" {
		t.Errorf("expected local fallback entries, got %+v", entries)
	}

	// 远程正常时直接返回远程结果
	remote.submitErr, remote.fetchErr = nil, nil
	remote.entries = []Entry{{Name: "Marlin", Score: 20}}
	if err := store.SubmitScore(ctx, "Marlin", 20); err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}
	entries, err = store.FetchScores(ctx)
	if err != nil || len(entries) != 1 || entries[0].Name != "Marlin" {
		t.Errorf("expected remote entries, got %+v (%v)", entries, err)
	}

	localEntries, _ := local.FetchScores(ctx)
	if len(localEntries) != 2 {
		t.Errorf("local store should hold both scores, got %d", len(localEntries))
	}
}

// TestFallbackScoreStoreLocalOnly 没有远程时只用本地
func TestFallbackScoreStoreLocalOnly(t *testing.T) {
	ctx := context.Background()
	store := NewFallbackScoreStore(NewLocalScoreStore(nil), nil)
	if err := store.SubmitScore(ctx, "Bruce", 4); err != nil {
		t.Fatalf("SubmitScore error: %v", err)
	}
	entries, err := store.FetchScores(ctx)
	if err != nil || len(entries) != 1 {
		t.Errorf("FetchScores = %+v, %v", entries, err)
	}
}

func TestFormatRecordedAt(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"afternoon", time.Date(2024, 1, 2, 15, 4, 0, 0, time.Local), "Jan 2 15:04"},
		{"two digit day", time.Date(2024, 11, 23, 9, 5, 30, 0, time.Local), "Nov 23 09:05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRecordedAt(tt.in); got != tt.want {
				t.Errorf("FormatRecordedAt() = %q, want %q", got, tt.want)
			}
		})
	}
}
