package systems

import (
	"log"
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
)

// RandomSource 随机数来源，*rand.Rand 满足此接口；测试中注入脚本化的序列
type RandomSource interface {
	Float64() float64
}

// Point 画布坐标点
type Point struct {
	X, Y float64
}

// Bounds 绘制画布的像素尺寸，可随窗口变化
type Bounds struct {
	Width, Height float64
}

// Valid 画布是否可用(尺寸为正)
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// FishSpawnSystem 决定何时、何处、生成多少条鱼
// 持有回合内的ID计数器，每个回合使用独立实例
type FishSpawnSystem struct {
	cfg    *config.RoundConfig
	rng    RandomSource
	nextID uint64
}

// NewFishSpawnSystem 创建生成系统，ID 从 1 开始
func NewFishSpawnSystem(cfg *config.RoundConfig, rng RandomSource) *FishSpawnSystem {
	return &FishSpawnSystem{
		cfg:    cfg,
		rng:    rng,
		nextID: 1,
	}
}

// TrySpawnPeriodic 周期生成
// 间隔未到时不生成且 lastSpawnAt 不变；末段到点后按概率跳过，跳过同样推进 lastSpawnAt，避免积压
func (s *FishSpawnSystem) TrySpawnPeriodic(now, lastSpawnAt time.Time, params DifficultyParams, bounds Bounds) (bool, time.Time, []components.Fish) {
	if now.Sub(lastSpawnAt) < params.SpawnDelay {
		return false, lastSpawnAt, nil
	}

	if params.Phase == PhaseEnd && s.rng.Float64() < params.SkipChance {
		log.Printf("[FishSpawnSystem] end phase skip at %s", now.Format("15:04:05.000"))
		return false, now, nil
	}

	fish := s.SpawnBurst(params.PeriodicCount, nil, params, bounds, now)
	if len(fish) == 0 {
		return false, lastSpawnAt, nil
	}
	return true, now, fish
}

// SpawnBurst 一次生成 count 条鱼
// anchor 非空时(命中奖励)在其周围的圆环上均匀分布，再夹到画布内；为空时在画布内随机
func (s *FishSpawnSystem) SpawnBurst(count int, anchor *Point, params DifficultyParams, bounds Bounds, now time.Time) []components.Fish {
	if count <= 0 || !bounds.Valid() {
		return nil
	}

	fish := make([]components.Fish, 0, count)
	for i := 0; i < count; i++ {
		var pos Point
		if anchor != nil {
			pos = s.ringPosition(*anchor, i, count, bounds)
		} else {
			pos = s.randomPosition(bounds)
		}
		fish = append(fish, s.newFish(pos, params, now))
	}
	return fish
}

// NextID 下一条鱼将获得的ID
func (s *FishSpawnSystem) NextID() uint64 {
	return s.nextID
}

func (s *FishSpawnSystem) newFish(pos Point, params DifficultyParams, now time.Time) components.Fish {
	lifetime := params.MinLifetime + time.Duration(s.rng.Float64()*float64(params.MaxLifetime-params.MinLifetime))
	swim := s.cfg.Swim

	f := components.Fish{
		ID:        s.nextID,
		X:         pos.X,
		Y:         pos.Y,
		Radius:    s.cfg.FishRadius,
		CreatedAt: now,
		Lifetime:  lifetime,
		Scale:     0,
		Fade:      1,
		SwimPhase: s.rng.Float64() * 2 * math.Pi,
		SwimSpeed: swim.MinSpeed + s.rng.Float64()*(swim.MaxSpeed-swim.MinSpeed),
	}
	s.nextID++
	return f
}

func (s *FishSpawnSystem) ringPosition(anchor Point, i, count int, bounds Bounds) Point {
	angle := 2 * math.Pi * float64(i) / float64(count)
	burst := s.cfg.Burst
	dist := burst.MinDistance + s.rng.Float64()*(burst.MaxDistance-burst.MinDistance)

	r := s.cfg.FishRadius
	return Point{
		X: clampAxis(anchor.X+math.Cos(angle)*dist, r, bounds.Width),
		Y: clampAxis(anchor.Y+math.Sin(angle)*dist, r, bounds.Height),
	}
}

func (s *FishSpawnSystem) randomPosition(bounds Bounds) Point {
	margin := s.cfg.FishRadius + s.cfg.RandomSpawnMargin
	return Point{
		X: randomAxis(s.rng, margin, bounds.Width),
		Y: randomAxis(s.rng, margin, bounds.Height),
	}
}

// clampAxis 把坐标夹到 [margin, size-margin]，画布过小时取中点
func clampAxis(v, margin, size float64) float64 {
	lo, hi := margin, size-margin
	if hi < lo {
		return size / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// randomAxis 在 [margin, size-margin] 内均匀取值，画布过小时取中点
func randomAxis(rng RandomSource, margin, size float64) float64 {
	span := size - 2*margin
	if span <= 0 {
		return size / 2
	}
	return margin + rng.Float64()*span
}
