package game

import (
	"context"
	"log"
	"sync"
	"time"
)

// SubmitResult 一次成绩提交的结果
type SubmitResult struct {
	Generation uint64
	Name       string
	Score      int
	Err        error
}

// ScoreReporter 在后台提交成绩，帧循环通过 Poll 非阻塞地取回结果
//
// 每局开始调用 BeginRound 获得新的代号；旧代号的结果在 Poll 时被丢弃，
// 因此回合的结束状态从不依赖提交结果。进行中的提交不会被取消。
type ScoreReporter struct {
	store   ScoreStore
	timeout time.Duration
	results chan SubmitResult

	mu         sync.Mutex
	generation uint64
	wg         sync.WaitGroup
}

// NewScoreReporter 创建提交器
func NewScoreReporter(store ScoreStore, timeout time.Duration) *ScoreReporter {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ScoreReporter{
		store:   store,
		timeout: timeout,
		results: make(chan SubmitResult, 8),
	}
}

// BeginRound 开始新的一代，返回其代号
func (r *ScoreReporter) BeginRound() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++
	return r.generation
}

// Generation 当前代号
func (r *ScoreReporter) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// Submit 异步提交，立即返回
func (r *ScoreReporter) Submit(gen uint64, name string, score int) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		err := r.store.SubmitScore(ctx, name, score)
		if err != nil {
			log.Printf("[ScoreReporter] Warning: submit failed for %q (%d): %v", name, score, err)
		}
		r.results <- SubmitResult{Generation: gen, Name: name, Score: score, Err: err}
	}()
}

// Poll 取回一条当前代的结果，没有时立即返回 false
func (r *ScoreReporter) Poll() (SubmitResult, bool) {
	current := r.Generation()
	for {
		select {
		case res := <-r.results:
			if res.Generation != current {
				log.Printf("[ScoreReporter] dropping stale result from round %d", res.Generation)
				continue
			}
			return res, true
		default:
			return SubmitResult{}, false
		}
	}
}

// Wait 等待所有进行中的提交完成(退出和测试时使用)
func (r *ScoreReporter) Wait() {
	r.wg.Wait()
}
