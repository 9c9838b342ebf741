package game

import (
	"context"
	"fmt"
	"log"
)

// FallbackScoreStore 成绩总是先写入本地，再尝试远程
// 远程失败时提交返回错误(本地已保存)，拉取退回到本地记录
type FallbackScoreStore struct {
	local  ScoreStore
	remote ScoreStore
}

// NewFallbackScoreStore 创建本地优先的组合存储
func NewFallbackScoreStore(local, remote ScoreStore) *FallbackScoreStore {
	return &FallbackScoreStore{local: local, remote: remote}
}

// SubmitScore 本地保存后提交到远程
func (s *FallbackScoreStore) SubmitScore(ctx context.Context, name string, score int) error {
	if err := s.local.SubmitScore(ctx, name, score); err != nil {
		log.Printf("[FallbackScoreStore] Warning: local save failed: %v", err)
	}
	if s.remote == nil {
		return nil
	}
	return s.remote.SubmitScore(ctx, name, score)
}

// FetchScores 优先远程，失败时返回本地记录和远程错误
func (s *FallbackScoreStore) FetchScores(ctx context.Context) ([]Entry, error) {
	if s.remote != nil {
		entries, err := s.remote.FetchScores(ctx)
		if err == nil {
			return entries, nil
		}
		local, localErr := s.local.FetchScores(ctx)
		if localErr != nil {
			return nil, fmt.Errorf("remote: %w; local: %v", err, localErr)
		}
		return local, err
	}
	return s.local.FetchScores(ctx)
}
