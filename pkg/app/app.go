// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"image/color"
	"io"
	"log"
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/scenes"
	"github.com/decker502/fishtap/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Round 回合参数，为 nil 时使用内置默认值
	Round *config.RoundConfig
	// Storage 本地持久化(设置与本地排行榜)，为 nil 时仅保存在内存中
	Storage *gdata.Manager
	// LeaderboardURL / LeaderboardKey 远程排行榜，留空则只使用本地排行榜
	LeaderboardURL string
	LeaderboardKey string
	// Seed 非零时回合随机数可复现
	Seed int64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	gameState                *game.GameState
	viewport                 *scenes.Viewport
	clock                    scenes.Clock
	lastUpdate               time.Time
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	roundConfig := cfg.Round
	if roundConfig == nil {
		roundConfig = config.DefaultRoundConfig()
	}

	settings := game.NewSettingsManager(cfg.Storage)

	// 初始化音频上下文
	audioContext := audio.NewContext(game.SampleRate)
	audioManager := game.NewAudioManager(audioContext, settings)
	audioManager.PreloadSounds()
	log.Printf("[App] AudioManager initialized")

	store := NewScoreStore(cfg.Storage, cfg.LeaderboardURL, cfg.LeaderboardKey, roundConfig.Leaderboard.Table)
	gameState := game.NewGameState(roundConfig, settings, store, audioManager, cfg.Seed)

	a := &App{
		gameState: gameState,
		viewport: &scenes.Viewport{
			Rect:    utils.Rect{Width: config.GameWindowWidth, Height: config.GameWindowHeight},
			Surface: utils.Size{Width: config.GameWindowWidth, Height: config.GameWindowHeight},
		},
		clock: time.Now,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(sceneID string) game.Scene {
		switch sceneID {
		case game.SceneGame:
			return scenes.NewGameScene(gameState, sceneManager, a.viewport, a.clock)
		case game.SceneResults:
			return scenes.NewResultsScene(gameState, sceneManager, a.viewport, a.clock)
		case game.SceneScoreboard:
			return scenes.NewScoreboardScene(gameState, sceneManager, a.viewport, a.clock)
		case game.SceneMenu:
			return scenes.NewMenuScene(gameState, sceneManager, a.viewport, a.clock)
		}
		return nil
	})
	a.sceneManager = sceneManager

	sceneManager.Load(game.SceneMenu)
	return a, nil
}

// NewScoreStore 选择排行榜存储
// 远程排行榜已配置时组合本地与远程，否则只用本地
func NewScoreStore(storage *gdata.Manager, url, key, table string) game.ScoreStore {
	local := game.NewLocalScoreStore(storage)
	remote := game.NewRemoteScoreStore(url, key, table, nil)
	if !remote.Configured() {
		log.Printf("[App] Remote leaderboard not configured, using local scores only")
		return local
	}
	log.Printf("[App] Remote leaderboard enabled")
	return game.NewFallbackScoreStore(local, remote)
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if ebiten.IsWindowBeingClosed() {
		a.SaveOnExit()
		return ebiten.Termination
	}

	now := a.clock()
	a.gameState.PollSubmission(now)

	// 特效按真实帧间隔推进；回合本身按绝对时间计算，不受影响
	deltaTime := 1.0 / 60.0
	if !a.lastUpdate.IsZero() {
		deltaTime = math.Min(now.Sub(a.lastUpdate).Seconds(), 0.1)
	}
	a.lastUpdate = now

	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
	scenes.DrawToast(screen, a.gameState, a.clock())
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 画布与窗口像素一一对应，直接绘制即可
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	screen.DrawImage(offscreen, op)
}

// Layout 画布跟随窗口的逻辑尺寸，不按设备像素比放大
// 鱼的半径与界面文字都以逻辑像素给出，高 DPR 屏幕上由 ebiten 负责放大
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	*a.viewport = logicalViewport(outsideWidth, outsideHeight)
	return int(a.viewport.Surface.Width), int(a.viewport.Surface.Height)
}

// logicalViewport ebiten 报告的指针坐标已经是画布坐标，所以 Rect 与 Surface 相同
func logicalViewport(outsideWidth, outsideHeight int) scenes.Viewport {
	surface := utils.SurfaceForViewport(float64(outsideWidth), float64(outsideHeight), 1)
	return scenes.Viewport{
		Rect:    utils.Rect{Width: surface.Width, Height: surface.Height},
		Surface: surface,
	}
}

// SaveOnExit 关闭窗口前让当前场景保存状态，并等待后台提交结束
func (a *App) SaveOnExit() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		s.SaveOnExit()
	}
	a.gameState.Reporter.Wait()
}
