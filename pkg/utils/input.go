package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerPress 一次新的按下(鼠标左键或一根手指)
// 坐标是 ebiten 的逻辑屏幕坐标
type PointerPress struct {
	X, Y  int
	Touch bool
}

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// AppendJustPressedPointers 追加本帧所有新的按下，每根手指算一次独立的点击
func AppendJustPressedPointers(presses []PointerPress) []PointerPress {
	var touches [][2]int
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		touches = append(touches, [2]int{x, y})
	}

	mouseX, mouseY := ebiten.CursorPosition()
	return CollectPointerPresses(presses, touches, inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft), mouseX, mouseY)
}

// CollectPointerPresses 合并触摸与鼠标按下
// 有新触摸时忽略同帧的鼠标按下：移动端浏览器会为一次触摸再合成一次鼠标事件
func CollectPointerPresses(presses []PointerPress, touches [][2]int, mouseJustPressed bool, mouseX, mouseY int) []PointerPress {
	for _, t := range touches {
		presses = append(presses, PointerPress{X: t[0], Y: t[1], Touch: true})
	}
	if len(touches) == 0 && mouseJustPressed {
		presses = append(presses, PointerPress{X: mouseX, Y: mouseY})
	}
	return presses
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}
