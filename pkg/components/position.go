package components

// PositionComponent 存储实体的画布坐标
// 仅用于 ECS 中的点击反馈特效，鱼自身的坐标保存在 Fish 中
type PositionComponent struct {
	X float64
	Y float64
}
