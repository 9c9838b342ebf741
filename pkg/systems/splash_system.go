package systems

import (
	"image/color"
	"log"
	"math"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/ecs"
	"github.com/decker502/fishtap/pkg/entities"
	"github.com/decker502/fishtap/pkg/utils"
)

// SplashView 渲染层读取的特效快照
type SplashView struct {
	X, Y   float64
	Radius float64
	Alpha  float64 // 0..1
	Color  color.RGBA
	Ring   bool // 波纹只描边
}

// SplashSystem 创建并推进点击反馈特效(未命中波纹、命中水花)
// 特效实体存放在 ECS 中，由 LifetimeSystem 负责回收
type SplashSystem struct {
	entityManager  *ecs.EntityManager
	lifetimeSystem *LifetimeSystem
}

// NewSplashSystem 创建特效系统
func NewSplashSystem(em *ecs.EntityManager) *SplashSystem {
	return &SplashSystem{
		entityManager:  em,
		lifetimeSystem: NewLifetimeSystem(em),
	}
}

// SpawnMiss 在点击位置生成一个扩散的红色波纹
func (s *SplashSystem) SpawnMiss(x, y float64) ecs.EntityID {
	id, err := entities.NewMissRippleEffect(s.entityManager, x, y)
	if err != nil {
		log.Printf("[SplashSystem] Warning: failed to create ripple: %v", err)
	}
	return id
}

// SpawnHit 在被命中的鱼周围生成一圈向外飞散的水花
func (s *SplashSystem) SpawnHit(x, y, radius float64) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, config.SplashDropletCount)
	for i := 0; i < config.SplashDropletCount; i++ {
		angle := 2 * math.Pi * float64(i) / float64(config.SplashDropletCount)
		id, err := entities.NewSplashDropletEffect(s.entityManager, x, y, angle, radius)
		if err != nil {
			log.Printf("[SplashSystem] Warning: failed to create droplet: %v", err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Update 推进所有特效，过期的实体被回收
func (s *SplashSystem) Update(deltaTime float64) {
	s.lifetimeSystem.Update(deltaTime)
}

// Clear 清除所有特效(回合重开时调用)
func (s *SplashSystem) Clear() {
	s.entityManager.Clear()
}

// Views 返回当前特效的渲染快照，按创建顺序排列
func (s *SplashSystem) Views() []SplashView {
	ids := ecs.GetEntitiesWith3[*components.PositionComponent, *components.LifetimeComponent, *components.SplashComponent](s.entityManager)
	views := make([]SplashView, 0, len(ids))
	for _, id := range ids {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		splash, _ := ecs.GetComponent[*components.SplashComponent](s.entityManager, id)

		t := utils.EaseOutCubic(lifetime.Progress())
		views = append(views, SplashView{
			X:      pos.X + splash.DriftX*t,
			Y:      pos.Y + splash.DriftY*t,
			Radius: utils.Lerp(splash.StartRadius, splash.EndRadius, t),
			Alpha:  1 - lifetime.Progress(),
			Color:  splash.Color,
			Ring:   splash.Kind == components.SplashMiss,
		})
	}
	return views
}
