package components

import "image/color"

// SplashKind 点击反馈类型
type SplashKind int

const (
	SplashMiss    SplashKind = iota // 未命中：红色波纹
	SplashDroplet                   // 命中：水花
)

// SplashComponent 点击反馈特效
// 纯视觉，不参与模拟与命中检测
type SplashComponent struct {
	Kind        SplashKind
	StartRadius float64
	EndRadius   float64
	DriftX      float64 // 生命周期内的总位移
	DriftY      float64
	Color       color.RGBA
}
