package entities

import (
	"fmt"
	"math"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/ecs"
)

// 水花半径(像素)：从生成时的大小缩小到消失前的大小
const (
	dropletStartRadius = 6.0
	dropletEndRadius   = 2.0
)

// NewMissRippleEffect 创建未命中波纹实体
// 波纹在点击位置从小到大扩散，MissRippleLifetime 秒后由 LifetimeSystem 回收
//
// 参数:
//   - em: 实体管理器
//   - x, y: 点击位置的画布坐标
//
// 返回:
//   - ecs.EntityID: 创建的波纹实体ID，失败返回 0
//   - error: em 为 nil 时返回错误
func NewMissRippleEffect(em *ecs.EntityManager, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{MaxLifetime: config.MissRippleLifetime})
	ecs.AddComponent(em, entityID, &components.SplashComponent{
		Kind:        components.SplashMiss,
		StartRadius: config.MissRippleRadius * 0.4,
		EndRadius:   config.MissRippleRadius,
		Color:       config.MissRippleColor,
	})
	return entityID, nil
}

// NewSplashDropletEffect 创建一滴命中水花
// 水花从鱼身半径的一半处出发，沿 angle 方向飞出 radius 的距离
//
// 参数:
//   - em: 实体管理器
//   - x, y: 被命中的鱼的中心
//   - angle: 飞出方向(弧度)
//   - radius: 鱼的当前半径
func NewSplashDropletEffect(em *ecs.EntityManager, x, y, angle, radius float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	dx, dy := math.Cos(angle), math.Sin(angle)
	entityID := em.CreateEntity()
	ecs.AddComponent(em, entityID, &components.PositionComponent{
		X: x + dx*radius*0.5,
		Y: y + dy*radius*0.5,
	})
	ecs.AddComponent(em, entityID, &components.LifetimeComponent{MaxLifetime: config.SplashLifetime})
	ecs.AddComponent(em, entityID, &components.SplashComponent{
		Kind:        components.SplashDroplet,
		StartRadius: dropletStartRadius,
		EndRadius:   dropletEndRadius,
		DriftX:      dx * radius,
		DriftY:      dy * radius,
		Color:       config.SplashColor,
	})
	return entityID, nil
}
