package systems

import (
	"time"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
)

// scriptedRandom 按顺序返回预设的随机数，用尽后循环
// 每条鱼的取数顺序：位置(环形 1 个 / 随机 2 个)、寿命、相位、速度
type scriptedRandom struct {
	values []float64
	calls  int
}

func newScriptedRandom(values ...float64) *scriptedRandom {
	if len(values) == 0 {
		values = []float64{0.5}
	}
	return &scriptedRandom{values: values}
}

func (r *scriptedRandom) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

// testBase 测试用的时间原点
var testBase = time.UnixMilli(0)

// at 返回原点之后 ms 毫秒的时刻
func at(ms int64) time.Time {
	return testBase.Add(time.Duration(ms) * time.Millisecond)
}

// newTestFish 创建一条位于 (x, y) 的测试鱼，无漂移
func newTestFish(id uint64, x, y float64, createdAt time.Time, lifetime time.Duration) components.Fish {
	return components.Fish{
		ID:        id,
		X:         x,
		Y:         y,
		Radius:    35,
		CreatedAt: createdAt,
		Lifetime:  lifetime,
		Fade:      1,
	}
}

// noSwimConfig 关闭漂移的默认配置，便于精确断言坐标
func noSwimConfig() *config.RoundConfig {
	cfg := config.DefaultRoundConfig()
	cfg.Swim.AmplitudeX = 0
	cfg.Swim.AmplitudeY = 0
	return cfg
}
