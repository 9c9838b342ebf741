package scenes

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/ecs"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/systems"
	"github.com/decker502/fishtap/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// resultsDelay 回合结束后停留片刻再进入结算界面
const resultsDelay = 800 * time.Millisecond

// GameScene 一局游戏
// 回合与特效都由本场景在 ebiten 的 Update goroutine 上独占推进
type GameScene struct {
	state        *game.GameState
	sceneManager *game.SceneManager
	viewport     *Viewport
	clock        Clock

	round  *game.Round
	splash *systems.SplashSystem

	presses     []utils.PointerPress
	lastWarning int
	finishedAt  time.Time
}

// NewGameScene 创建游戏场景，回合在画布可用的第一帧开始
func NewGameScene(gs *game.GameState, sm *game.SceneManager, vp *Viewport, clock Clock) *GameScene {
	return &GameScene{
		state:        gs,
		sceneManager: sm,
		viewport:     vp,
		clock:        clock,
		round:        gs.NewRound(),
		splash:       systems.NewSplashSystem(ecs.NewEntityManager()),
	}
}

// Update 处理点击并推进回合
func (s *GameScene) Update(deltaTime float64) {
	now := s.clock()
	bounds := s.viewport.Bounds()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.sceneManager.Load(game.SceneMenu)
		return
	}

	if s.round.Phase() == game.RoundIdle && bounds.Valid() {
		s.round.Start(now)
	}

	if s.round.Phase() == game.RoundRunning {
		s.presses = utils.AppendJustPressedPointers(s.presses[:0])
		for _, p := range s.presses {
			if x, y, ok := s.viewport.ToCanvas(p.X, p.Y); ok {
				s.handleTap(x, y, now)
			}
		}

		if res := s.round.Tick(now, bounds); res.Finished {
			s.finishedAt = now
			s.playSound(game.SoundFinish)
		} else {
			s.tickWarning()
		}
	}

	s.splash.Update(deltaTime)

	if s.round.Phase() == game.RoundFinished && now.Sub(s.finishedAt) >= resultsDelay {
		s.sceneManager.Load(game.SceneResults)
	}
}

func (s *GameScene) handleTap(x, y float64, now time.Time) {
	if f, ok := s.round.Tap(x, y, now); ok {
		s.splash.SpawnHit(f.X, f.Y, f.Radius*math.Max(f.Scale, 0.5))
		s.playSound(game.SoundHit)
		return
	}
	s.splash.SpawnMiss(x, y)
	s.playSound(game.SoundMiss)
}

// tickWarning 最后几秒每秒提示一次
func (s *GameScene) tickWarning() {
	if sec, ok := game.WarningSecond(s.round.RemainingSeconds()); ok && sec != s.lastWarning {
		s.lastWarning = sec
		s.playSound(game.SoundWarning)
	}
}

func (s *GameScene) playSound(id string) {
	if s.state.Audio != nil {
		s.state.Audio.PlaySound(id)
	}
}

// Draw 绘制水面、鱼、特效与信息栏
func (s *GameScene) Draw(screen *ebiten.Image) {
	w := s.viewport.Surface.Width
	h := s.viewport.Surface.Height
	now := s.clock()

	drawWater(screen, w, h, now)

	endPhase := s.round.Phase() == game.RoundRunning && s.round.Difficulty(now).Phase == systems.PhaseEnd
	if endPhase {
		vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), withAlpha(config.EndPhaseTint, 1), false)
	}

	for _, f := range s.round.Fish() {
		drawFish(screen, f)
	}

	for _, v := range s.splash.Views() {
		if v.Ring {
			vector.StrokeCircle(screen, float32(v.X), float32(v.Y), float32(v.Radius), 3, withAlpha(v.Color, v.Alpha), true)
		} else {
			vector.DrawFilledCircle(screen, float32(v.X), float32(v.Y), float32(v.Radius), withAlpha(v.Color, v.Alpha), true)
		}
	}

	if endPhase {
		if alpha, ok := runningOutAlpha(s.round.RemainingSeconds(), now); ok {
			drawScaledText(screen, "TIME RUNNING OUT!", w/2, 100, 3, withAlpha(config.RunningOutColor, alpha))
		}
	}

	s.drawHUD(screen, w, now)
}

func (s *GameScene) drawHUD(screen *ebiten.Image, w float64, now time.Time) {
	drawPanel(screen, 0, 0, w, config.HUDHeight, withAlpha(config.HUDBackground, 1), nil)
	y := (config.HUDHeight - uiLineHeight) / 2

	drawText(screen, fmt.Sprintf("Score: %d", s.round.Score()), config.HUDPaddingX, y, config.TextColor, text.AlignStart)

	remaining := s.round.RemainingSeconds()
	timeColor := config.TextColor
	if remaining <= config.TimeWarningSeconds {
		timeColor = config.WarningColor
	}
	drawText(screen, "Time: "+formatRemaining(remaining), w-config.HUDPaddingX, y, timeColor, text.AlignEnd)

	if s.round.Phase() == game.RoundRunning {
		drawText(screen, s.state.PlayerName, w/2, y, config.TextColor, text.AlignCenter)
	}
	if s.round.Phase() == game.RoundFinished {
		drawScaledText(screen, "Time's up!", w/2, s.viewport.Surface.Height/2-30, 4, config.TextColor)
	}
}

// drawFish 圆形鱼身加尾鳍与眼睛，尺寸随 Scale 变化，命中后淡出
func drawFish(screen *ebiten.Image, f components.Fish) {
	r := f.Radius * f.Scale
	if r <= 0.5 || f.Fade <= 0 {
		return
	}
	x, y := float32(f.X), float32(f.Y)
	rr := float32(r)
	body := withAlpha(config.FishBodyColor, f.Fade)
	fin := withAlpha(config.FishFinColor, f.Fade)

	// 尾鳍：鱼身左侧的两条斜线与小圆
	tailX := x - rr*0.9
	vector.StrokeLine(screen, tailX, y, tailX-rr*0.6, y-rr*0.5, rr*0.25, fin, true)
	vector.StrokeLine(screen, tailX, y, tailX-rr*0.6, y+rr*0.5, rr*0.25, fin, true)

	vector.DrawFilledCircle(screen, x, y, rr, body, true)
	vector.DrawFilledCircle(screen, x-rr*0.1, y-rr*0.55, rr*0.35, fin, true)
	vector.DrawFilledCircle(screen, x+rr*0.45, y-rr*0.2, rr*0.12, withAlpha(config.FishEyeColor, f.Fade), true)
}

// waterBands 背景渐变的色带数量
const waterBands = 24

// drawWater 竖直渐变的水面，外加几个缓慢上浮的气泡
// 纯装饰，与回合状态无关
func drawWater(screen *ebiten.Image, w, h float64, now time.Time) {
	bandH := h / waterBands
	for i := 0; i < waterBands; i++ {
		t := float64(i) / float64(waterBands-1)
		c := color.RGBA{
			R: uint8(utils.Lerp(float64(config.WaterTopColor.R), float64(config.WaterBottomColor.R), t)),
			G: uint8(utils.Lerp(float64(config.WaterTopColor.G), float64(config.WaterBottomColor.G), t)),
			B: uint8(utils.Lerp(float64(config.WaterTopColor.B), float64(config.WaterBottomColor.B), t)),
			A: 255,
		}
		vector.DrawFilledRect(screen, 0, float32(float64(i)*bandH), float32(w), float32(bandH+1), c, false)
	}

	secs := float64(now.UnixMilli()%60000) / 1000
	bubble := withAlpha(color.RGBA{255, 255, 255, 255}, 0.35)
	for i := 0; i < 8; i++ {
		fi := float64(i)
		bx := w * math.Mod(0.13+fi*0.17, 1)
		by := h - math.Mod(secs*(20+fi*6)+fi*97, h+40)
		vector.StrokeCircle(screen, float32(bx+math.Sin(secs+fi)*6), float32(by), float32(3+i%3*2), 1, bubble, true)
	}
}

// formatRemaining 剩余时间保留一位小数
func formatRemaining(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%.1fs", math.Floor(seconds*10)/10)
}

// runningOutAlpha 横幅透明度在 0.1 到 0.5 之间随时间脉动
// 剩余时间超出 (0, RunningOutSeconds] 时不显示
func runningOutAlpha(remaining float64, now time.Time) (float64, bool) {
	if remaining <= 0 || remaining > config.RunningOutSeconds {
		return 0, false
	}
	return 0.3 + math.Sin(float64(now.UnixMilli())*0.01)*0.2, true
}
