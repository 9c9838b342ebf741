package game

import (
	"log"
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/systems"
)

// RoundPhase 回合状态
type RoundPhase int

const (
	RoundIdle     RoundPhase = iota // 尚未开始
	RoundRunning                    // 进行中
	RoundFinished                   // 已结束，不再推进任何实体
)

// String 返回状态名
func (p RoundPhase) String() string {
	switch p {
	case RoundIdle:
		return "idle"
	case RoundRunning:
		return "running"
	case RoundFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// TickResult 单次 Tick 的结果摘要
type TickResult struct {
	Spawned  int  // 本帧新增的鱼(周期 + 奖励)
	Removed  int  // 本帧移除的鱼(到期或淡出完毕)
	Finished bool // 本帧是否刚刚结束回合
}

// pendingBurst 命中后排队的奖励生成
type pendingBurst struct {
	dueAt  time.Time
	anchor systems.Point
	count  int
}

// Round 一局限时点鱼游戏
//
// 非并发安全：由单一 goroutine 持有(ebiten Update 或终端事件循环)，
// 指针事件在两次 Tick 之间于同一 goroutine 上处理。
// 所有时间都由调用方传入，已流逝时间每次从 startedAt 重新计算，从不累加。
type Round struct {
	cfg       *config.RoundConfig
	rng       systems.RandomSource
	curve     *systems.DifficultyCurve
	lifecycle *systems.FishLifecycleSystem
	hits      *systems.HitTestSystem
	spawner   *systems.FishSpawnSystem

	phase       RoundPhase
	startedAt   time.Time
	lastSpawnAt time.Time
	score       int
	remaining   float64
	fish        []components.Fish
	pending     []pendingBurst

	onFinished func(score int)
}

// NewRound 创建一个空闲状态的回合
// onFinished 可为 nil；回合结束时恰好调用一次
func NewRound(cfg *config.RoundConfig, rng systems.RandomSource, onFinished func(score int)) *Round {
	lifecycle := systems.NewFishLifecycleSystem(cfg)
	return &Round{
		cfg:        cfg,
		rng:        rng,
		curve:      systems.NewDifficultyCurve(cfg),
		lifecycle:  lifecycle,
		hits:       systems.NewHitTestSystem(lifecycle),
		spawner:    systems.NewFishSpawnSystem(cfg, rng),
		phase:      RoundIdle,
		remaining:  cfg.DurationSeconds,
		onFinished: onFinished,
	}
}

// Start 开始回合，仅在空闲状态下有效
func (r *Round) Start(now time.Time) bool {
	if r.phase != RoundIdle {
		return false
	}

	r.phase = RoundRunning
	r.startedAt = now
	r.lastSpawnAt = time.Time{} // 零值：首帧立即生成
	r.score = 0
	r.remaining = r.cfg.DurationSeconds
	r.fish = r.fish[:0]
	r.pending = r.pending[:0]
	r.spawner = systems.NewFishSpawnSystem(r.cfg, r.rng)

	log.Printf("[Round] started, duration=%.0fs", r.cfg.DurationSeconds)
	return true
}

// Tick 推进一帧
// 未在进行中或画布不可用时什么也不做
func (r *Round) Tick(now time.Time, bounds systems.Bounds) TickResult {
	var result TickResult
	if r.phase != RoundRunning || !bounds.Valid() {
		return result
	}

	// 1. 推进并移除死亡的鱼，保持插入顺序
	alive := r.fish[:0]
	for i := range r.fish {
		f := r.fish[i]
		if r.lifecycle.Update(&f, now) {
			alive = append(alive, f)
		} else {
			result.Removed++
		}
	}
	r.fish = alive

	// 2. 查询当前难度
	params := r.Difficulty(now)

	// 3. 到期的奖励生成，寿命取当前难度
	remainingBursts := r.pending[:0]
	for _, b := range r.pending {
		if now.Before(b.dueAt) {
			remainingBursts = append(remainingBursts, b)
			continue
		}
		anchor := b.anchor
		spawned := r.spawner.SpawnBurst(b.count, &anchor, params, bounds, now)
		r.fish = append(r.fish, spawned...)
		result.Spawned += len(spawned)
	}
	r.pending = remainingBursts

	// 4. 周期生成
	spawned, last, fish := r.spawner.TrySpawnPeriodic(now, r.lastSpawnAt, params, bounds)
	r.lastSpawnAt = last
	if spawned {
		r.fish = append(r.fish, fish...)
		result.Spawned += len(fish)
	}

	// 5. 剩余时间只减不增
	left := math.Max(0, r.cfg.DurationSeconds-r.elapsedSeconds(now))
	r.remaining = math.Min(r.remaining, left)

	if r.remaining <= 0 {
		r.finish()
		result.Finished = true
	}
	return result
}

// Tap 处理一次点击
// 仅在进行中有效；至多命中一条鱼，命中后计分并排队一组奖励生成
func (r *Round) Tap(x, y float64, now time.Time) (components.Fish, bool) {
	if r.phase != RoundRunning {
		return components.Fish{}, false
	}

	idx, ok := r.hits.ResolveHit(r.fish, x, y)
	if !ok {
		return components.Fish{}, false
	}

	hit := r.fish[idx]
	r.score++

	params := r.Difficulty(now)
	r.pending = append(r.pending, pendingBurst{
		dueAt:  now.Add(r.cfg.BurstDelay()),
		anchor: systems.Point{X: hit.X, Y: hit.Y},
		count:  params.BurstCount,
	})

	log.Printf("[Round] hit fish %d, score=%d, burst=%d queued", hit.ID, r.score, params.BurstCount)
	return hit, true
}

func (r *Round) finish() {
	r.phase = RoundFinished
	r.remaining = 0
	r.pending = r.pending[:0]

	log.Printf("[Round] finished score=%d", r.score)
	if r.onFinished != nil {
		r.onFinished(r.score)
	}
}

func (r *Round) elapsedSeconds(now time.Time) float64 {
	return now.Sub(r.startedAt).Seconds()
}

// Phase 当前状态
func (r *Round) Phase() RoundPhase {
	return r.phase
}

// Score 当前得分
func (r *Round) Score() int {
	return r.score
}

// RemainingSeconds 最近一次 Tick 计算的剩余秒数
func (r *Round) RemainingSeconds() float64 {
	return r.remaining
}

// StartedAt 回合开始时刻
func (r *Round) StartedAt() time.Time {
	return r.startedAt
}

// Fish 返回存活鱼的副本，按生成顺序排列
func (r *Round) Fish() []components.Fish {
	out := make([]components.Fish, len(r.fish))
	copy(out, r.fish)
	return out
}

// PendingBursts 尚未生成的奖励组数
func (r *Round) PendingBursts() int {
	return len(r.pending)
}

// Difficulty 返回 now 时刻的难度参数
func (r *Round) Difficulty(now time.Time) systems.DifficultyParams {
	return r.curve.At(r.elapsedSeconds(now))
}
