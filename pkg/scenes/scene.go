package scenes

import (
	"image/color"
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/systems"
	"github.com/decker502/fishtap/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// Clock 返回当前时间，测试中可替换
type Clock func() time.Time

// Viewport 画布在窗口中的位置与后备缓冲区尺寸
// 由 App.Layout 每帧更新，场景只读
type Viewport struct {
	Rect    utils.Rect // 画布在客户端坐标中的矩形
	Surface utils.Size // 画布像素尺寸
}

// Bounds 回合使用的画布尺寸
func (v *Viewport) Bounds() systems.Bounds {
	return systems.Bounds{Width: v.Surface.Width, Height: v.Surface.Height}
}

// ToCanvas 把客户端坐标映射到画布
func (v *Viewport) ToCanvas(x, y int) (float64, float64, bool) {
	return utils.PointerToCanvas(float64(x), float64(y), v.Rect, v.Surface)
}

// uiFace 全部界面文字共用的字体
var uiFace = text.NewGoXFace(basicfont.Face7x13)

// uiLineHeight 单行文字高度
const uiLineHeight = 13.0

// drawText 在 (x, y) 绘制文字，align 控制水平对齐，y 为文字顶部
func drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color, align text.Align) {
	// 阴影
	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(x+1, y+1)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 160})
	shadowOp.PrimaryAlign = align
	text.Draw(screen, s, uiFace, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, uiFace, op)
}

// drawScaledText 放大绘制文字(标题、倒计时)
func drawScaledText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	w, _ := text.Measure(s, uiFace, uiLineHeight)
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x-w*scale/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, uiFace, op)
}

// drawPanel 半透明面板
func drawPanel(screen *ebiten.Image, x, y, w, h float64, fill, border color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), fill, true)
	if border == nil {
		return
	}
	x0, y0, x1, y1 := float32(x), float32(y), float32(x+w), float32(y+h)
	vector.StrokeLine(screen, x0, y0, x1, y0, 1, border, true)
	vector.StrokeLine(screen, x0, y1, x1, y1, 1, border, true)
	vector.StrokeLine(screen, x0, y0, x0, y1, 1, border, true)
	vector.StrokeLine(screen, x1, y0, x1, y1, 1, border, true)
}

// withAlpha 把非预乘颜色按 alpha 缩放后转换为 ebiten 需要的预乘颜色
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha) * float64(c.A) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(255 * a),
	}
}

// button 可点击的矩形按钮，坐标为画布坐标
type button struct {
	X, Y, W, H float64
	Label      string
}

// centeredButton 以 cx 为水平中心、y 为顶部的按钮
func centeredButton(label string, cx, y, w, h float64) button {
	return button{X: cx - w/2, Y: y, W: w, H: h, Label: label}
}

func (b button) contains(px, py float64) bool {
	return px >= b.X && px <= b.X+b.W && py >= b.Y && py <= b.Y+b.H
}

// clicked 本帧的点击或触摸是否落在按钮内
func (b button) clicked(vp *Viewport) bool {
	ok, x, y := utils.IsJustTouchedOrClicked()
	if !ok {
		return false
	}
	cx, cy, ok := vp.ToCanvas(x, y)
	return ok && b.contains(cx, cy)
}

// draw 指针悬停时高亮
func (b button) draw(screen *ebiten.Image, vp *Viewport) {
	fill := config.FishBodyColor
	px, py := utils.GetPointerPosition()
	if cx, cy, ok := vp.ToCanvas(px, py); ok && b.contains(cx, cy) {
		fill = config.ButtonHoverColor
	}
	drawPanel(screen, b.X, b.Y, b.W, b.H, withAlpha(fill, 1), config.TextColor)
	drawText(screen, b.Label, b.X+b.W/2, b.Y+b.H/2-uiLineHeight/2, config.TextColor, text.AlignCenter)
}
