package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// 场景ID
const (
	SceneMenu       = "menu"
	SceneGame       = "game"
	SceneResults    = "results"
	SceneScoreboard = "scoreboard" // 从菜单打开的只读排行榜
)

// SceneFactory 场景工厂函数类型
// 根据场景ID创建场景，避免 game 包依赖 scenes 包
type SceneFactory func(sceneID string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene   Scene
	currentSceneID string
	sceneFactory   SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Load to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentSceneID 最近一次通过 Load 切换到的场景ID
func (sm *SceneManager) CurrentSceneID() string {
	return sm.currentSceneID
}

// Load 通过工厂创建并切换到指定场景
func (sm *SceneManager) Load(sceneID string) bool {
	log.Printf("[SceneManager] loading scene: %s", sceneID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(sceneID)
	if newScene == nil {
		log.Printf("[SceneManager] Error: failed to create scene: %s", sceneID)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentSceneID = sceneID
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
