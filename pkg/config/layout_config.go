package config

import "image/color"

// 布局配置常量
// 窗口可缩放，画布尺寸随窗口变化，这里只定义初始尺寸与 UI 元素位置

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 初始窗口宽度
	GameWindowWidth = 800

	// GameWindowHeight 初始窗口高度
	GameWindowHeight = 600

	// WindowTitle 窗口标题
	WindowTitle = "Fish Tapper"
)

// HUD Configuration (顶部信息栏)
const (
	// HUDHeight 信息栏高度，信息栏叠加在画布顶部
	HUDHeight = 28

	// HUDPaddingX 信息栏左右内边距
	HUDPaddingX = 12

	// TimeWarningSeconds 剩余时间低于此值时计时器变红
	TimeWarningSeconds = 5.0

	// RunningOutSeconds 最终阶段剩余时间低于此值时闪烁提示横幅
	RunningOutSeconds = 10.0

	// ToastDurationSeconds 提示条显示时长
	ToastDurationSeconds = 5.0

	// LeaderboardVisibleRows 结算界面最多显示的排行行数
	LeaderboardVisibleRows = 10
)

// Effect Configuration (点击反馈)
const (
	// MissRippleRadius 未命中时红色波纹半径
	MissRippleRadius = 25.0

	// MissRippleLifetime 波纹存在时间(秒)
	MissRippleLifetime = 0.35

	// SplashDropletCount 命中时水花数量
	SplashDropletCount = 5

	// SplashLifetime 水花存在时间(秒)
	SplashLifetime = 0.45
)

// 颜色均为非预乘 alpha，绘制前经 withAlpha 转换
var (
	WaterTopColor    = color.RGBA{179, 229, 252, 255}
	WaterBottomColor = color.RGBA{79, 195, 247, 255}
	FishBodyColor    = color.RGBA{66, 165, 245, 255}
	FishFinColor     = color.RGBA{30, 136, 229, 180}
	FishEyeColor     = color.RGBA{11, 79, 138, 255}
	MissRippleColor  = color.RGBA{239, 83, 80, 110}
	SplashColor      = color.RGBA{144, 202, 249, 160}
	EndPhaseTint     = color.RGBA{255, 0, 0, 26}
	HUDBackground    = color.RGBA{11, 79, 138, 220}
	TextColor        = color.RGBA{240, 240, 240, 255}
	WarningColor     = color.RGBA{255, 82, 82, 255}
	RunningOutColor  = color.RGBA{255, 0, 0, 255}
	HighlightColor   = color.RGBA{255, 213, 79, 255}
	ButtonHoverColor = color.RGBA{30, 136, 229, 255}
	ToastSuccessBG   = color.RGBA{46, 125, 50, 230}
	ToastWarningBG   = color.RGBA{239, 108, 0, 230}
)
