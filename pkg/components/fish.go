package components

import "time"

// Fish 一条可被点击的鱼
// 值类型，由回合独占持有；每帧通过 FishLifecycleSystem.Update(now) 推进，内部不读取时钟
type Fish struct {
	ID        uint64        // 回合内单调递增
	X, Y      float64       // 画布坐标(中心)
	Radius    float64       // 基础半径，命中半径 = Radius * Scale
	CreatedAt time.Time     // 生成时刻
	Lifetime  time.Duration // 总寿命，生成时确定

	Hit   bool    // 是否已被击中，只会从 false 变为 true
	Scale float64 // 派生值：由年龄比例计算，每帧重算
	Fade  float64 // 派生值：命中后逐帧递减到 0

	SwimPhase float64 // 游动初相(弧度)
	SwimSpeed float64 // 游动角速度(弧度/毫秒)
}

// Age 返回鱼在 now 时刻的年龄
func (f *Fish) Age(now time.Time) time.Duration {
	return now.Sub(f.CreatedAt)
}

// Progress 返回年龄占寿命的比例，寿命非正时视为已到期
func (f *Fish) Progress(now time.Time) float64 {
	if f.Lifetime <= 0 {
		return 1
	}
	return float64(f.Age(now)) / float64(f.Lifetime)
}

// Hittable 是否仍可参与命中检测
func (f *Fish) Hittable() bool {
	return !f.Hit
}
