package systems

import (
	"log"

	"github.com/decker502/fishtap/pkg/components"
)

// HitTestSystem 把一次点击解析到至多一条鱼
type HitTestSystem struct {
	lifecycle *FishLifecycleSystem
}

// NewHitTestSystem 创建命中检测系统
func NewHitTestSystem(lifecycle *FishLifecycleSystem) *HitTestSystem {
	return &HitTestSystem{lifecycle: lifecycle}
}

// ResolveHit 按插入顺序扫描，第一条命中的鱼胜出，之后的鱼不再检测
// 返回命中鱼在切片中的下标
func (s *HitTestSystem) ResolveHit(fish []components.Fish, x, y float64) (int, bool) {
	for i := range fish {
		if s.lifecycle.CheckHit(&fish[i], x, y) {
			log.Printf("[HitTestSystem] hit fish %d at (%.1f, %.1f), scale=%.2f", fish[i].ID, x, y, fish[i].Scale)
			return i, true
		}
	}
	return -1, false
}
