package main

import (
	"github.com/decker502/fishtap/pkg/systems"
	"github.com/decker502/fishtap/pkg/utils"
)

// 每个终端单元格对应的画布像素
// 单元格高约为宽的两倍，这样圆形的鱼在终端里不会被拉长
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

// grid 终端单元格与画布坐标之间的换算
type grid struct {
	cols, rows int
}

// surface 画布尺寸；最上面一行留给信息栏
func (g grid) surface() utils.Size {
	rows := g.rows - 1
	if rows < 0 {
		rows = 0
	}
	return utils.Size{Width: float64(g.cols) * cellWidth, Height: float64(rows) * cellHeight}
}

func (g grid) bounds() systems.Bounds {
	s := g.surface()
	return systems.Bounds{Width: s.Width, Height: s.Height}
}

// cellToCanvas 把点击的单元格中心映射到画布
func (g grid) cellToCanvas(col, row int) (float64, float64, bool) {
	rect := utils.Rect{X: 0, Y: 1, Width: float64(g.cols), Height: float64(g.rows - 1)}
	return utils.PointerToCanvas(float64(col)+0.5, float64(row)+0.5, rect, g.surface())
}

// canvasToCell 画布坐标所在的单元格，画布外返回 false
func (g grid) canvasToCell(x, y float64) (int, int, bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col := int(x / cellWidth)
	row := int(y/cellHeight) + 1
	if col >= g.cols || row >= g.rows {
		return 0, 0, false
	}
	return col, row, true
}
