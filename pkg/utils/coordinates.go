// Package utils 提供通用工具函数
//
// coordinates.go 负责把指针事件的客户端坐标映射到绘制画布的像素坐标。
//
// # 坐标系统
//
//   - **客户端坐标**：窗口/终端中的逻辑坐标，指针事件使用此坐标系
//   - **显示矩形**：画布在客户端坐标中占据的矩形(原点 + 尺寸)
//   - **画布坐标**：后备缓冲区的像素坐标，鱼的位置与命中检测都使用此坐标系
//
// # 核心转换公式
//
//	canvasX = (clientX - rect.X) * (surface.Width / rect.Width)
//	canvasY = (clientY - rect.Y) * (surface.Height / rect.Height)
//
// 缩放比同时吸收了设备像素比(DPR)：后备缓冲区按 DPR 放大时，
// surface/rect 的比值正好等于 DPR，不需要单独处理。
package utils

import "math"

// Rect 客户端坐标中的矩形
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Size 像素尺寸
type Size struct {
	Width, Height float64
}

// PointerToCanvas 把客户端坐标映射到画布坐标
// 显示矩形宽或高为 0(画布尚未布局)时返回 ok=false
func PointerToCanvas(clientX, clientY float64, rect Rect, surface Size) (x, y float64, ok bool) {
	if rect.Width <= 0 || rect.Height <= 0 {
		return 0, 0, false
	}
	x = (clientX - rect.X) * (surface.Width / rect.Width)
	y = (clientY - rect.Y) * (surface.Height / rect.Height)
	return x, y, true
}

// SurfaceForViewport 返回逻辑视口在给定设备像素比下的后备缓冲区尺寸
// dpr 非正时按 1 计算
func SurfaceForViewport(cssWidth, cssHeight, dpr float64) Size {
	if dpr <= 0 {
		dpr = 1
	}
	return Size{
		Width:  math.Max(0, math.Floor(cssWidth*dpr)),
		Height: math.Max(0, math.Floor(cssHeight*dpr)),
	}
}
