package systems

import (
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
)

// FishLifecycleSystem 推进单条鱼的状态并负责命中判定
// now 由驱动循环传入，系统内部不读取时钟
type FishLifecycleSystem struct {
	lifecycle config.LifecycleConfig
	swim      config.SwimConfig
}

// NewFishLifecycleSystem 创建生命周期系统
func NewFishLifecycleSystem(cfg *config.RoundConfig) *FishLifecycleSystem {
	return &FishLifecycleSystem{
		lifecycle: cfg.Lifecycle,
		swim:      cfg.Swim,
	}
}

// LifecycleScale 三段线性：前 easeIn 比例从 0 升到 1，中段保持 1，最后 easeOut 比例降回 0
func LifecycleScale(progress, easeIn, easeOut float64) float64 {
	var scale float64
	switch {
	case progress < easeIn:
		scale = progress / easeIn
	case progress > 1-easeOut:
		scale = (1 - progress) / easeOut
	default:
		scale = 1
	}
	return math.Max(0, math.Min(1, scale))
}

// Update 推进一帧，返回鱼是否仍存活
// 存活条件：age < lifetime，且未命中或仍未淡出完毕
func (s *FishLifecycleSystem) Update(f *components.Fish, now time.Time) bool {
	age := f.Age(now)
	f.Scale = LifecycleScale(f.Progress(now), s.lifecycle.EaseInFraction, s.lifecycle.EaseOutFraction)

	// 有界正弦漂移，与命中状态无关
	t := float64(now.UnixMilli())
	f.X += math.Sin(t*f.SwimSpeed+f.SwimPhase) * s.swim.AmplitudeX
	f.Y += math.Cos(t*f.SwimSpeed*s.swim.YFrequencyRatio+f.SwimPhase) * s.swim.AmplitudeY

	if f.Hit {
		f.Fade = math.Max(0, f.Fade-s.lifecycle.FadeStep)
		f.Scale *= s.lifecycle.HitScaleBoost
	}

	return age < f.Lifetime && (!f.Hit || f.Fade > 0)
}

// CheckHit 判断点是否落在鱼的当前命中半径内
// 已命中的鱼恒返回 false；命中半径随入场/退场缩放变化
func (s *FishLifecycleSystem) CheckHit(f *components.Fish, x, y float64) bool {
	if !f.Hittable() {
		return false
	}
	if math.Hypot(x-f.X, y-f.Y) <= f.Radius*f.Scale {
		f.Hit = true
		return true
	}
	return false
}
