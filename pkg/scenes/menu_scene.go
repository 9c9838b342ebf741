package scenes

import (
	"fmt"
	"log"
	"unicode"
	"unicode/utf8"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 菜单按钮尺寸
const (
	menuButtonWidth  = 160.0
	menuButtonHeight = 36.0
)

// volumeStep 上下方向键每次调整的音量
const volumeStep = 0.1

// MenuScene 名字输入界面
// 输入合法名字后进入游戏；名字会被记住，下次打开时预填
type MenuScene struct {
	state        *game.GameState
	sceneManager *game.SceneManager
	viewport     *Viewport
	clock        Clock

	name   []rune
	errMsg string
	chars  []rune
}

// NewMenuScene 创建菜单场景
func NewMenuScene(gs *game.GameState, sm *game.SceneManager, vp *Viewport, clock Clock) *MenuScene {
	return &MenuScene{
		state:        gs,
		sceneManager: sm,
		viewport:     vp,
		clock:        clock,
		name:         []rune(gs.PlayerName),
	}
}

// Update 处理键盘输入与开始按钮
func (m *MenuScene) Update(deltaTime float64) {
	m.chars = ebiten.AppendInputChars(m.chars[:0])
	backspace := inpututil.IsKeyJustPressed(ebiten.KeyBackspace) ||
		inpututil.KeyPressDuration(ebiten.KeyBackspace) > 30 && inpututil.KeyPressDuration(ebiten.KeyBackspace)%4 == 0
	if len(m.chars) > 0 || backspace {
		m.name = editName(m.name, m.chars, backspace)
		m.errMsg = ""
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		m.toggleSound()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		m.changeVolume(volumeStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		m.changeVolume(-volumeStep)
	}

	start, scoreboard := m.buttons()
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) || scoreboard.clicked(m.viewport) {
		m.sceneManager.Load(game.SceneScoreboard)
		return
	}

	submit := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter)
	if submit || start.clicked(m.viewport) {
		m.submit()
	}
}

func (m *MenuScene) submit() {
	if err := m.state.SetPlayerName(string(m.name)); err != nil {
		m.errMsg = err.Error()
		return
	}
	log.Printf("[MenuScene] player %q starting a round", m.state.PlayerName)
	m.sceneManager.Load(game.SceneGame)
}

func (m *MenuScene) toggleSound() {
	settings := m.state.Settings
	settings.SetSoundEnabled(!settings.GetSettings().SoundEnabled)
	if err := settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
}

func (m *MenuScene) changeVolume(delta float64) {
	if m.state.Audio == nil {
		return
	}
	m.state.Audio.SetSoundVolume(m.state.Audio.GetSoundVolume() + delta)
	if err := m.state.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings: %v", err)
	}
	m.state.Audio.PlaySound(game.SoundHit)
}

// buttons 开始按钮与排行榜按钮，上下排列在输入框下方
func (m *MenuScene) buttons() (start, scoreboard button) {
	cx := m.viewport.Surface.Width / 2
	y := m.viewport.Surface.Height/2 + 70
	start = centeredButton("Start", cx, y, menuButtonWidth, menuButtonHeight)
	scoreboard = centeredButton("View Scoreboard", cx, y+menuButtonHeight+12, menuButtonWidth, menuButtonHeight)
	return start, scoreboard
}

// Draw 绘制标题、输入框与提示
func (m *MenuScene) Draw(screen *ebiten.Image) {
	w := m.viewport.Surface.Width
	h := m.viewport.Surface.Height
	drawWater(screen, w, h, m.clock())

	cx := w / 2
	cy := h / 2
	drawScaledText(screen, "Tap the Fish", cx, cy-150, 4, config.TextColor)
	drawText(screen, fmt.Sprintf("Catch as many fish as you can in %.0f seconds.", m.state.Config.DurationSeconds),
		cx, cy-80, config.TextColor, text.AlignCenter)

	drawText(screen, "Enter your name:", cx, cy-40, config.TextColor, text.AlignCenter)
	boxW := 260.0
	drawPanel(screen, cx-boxW/2, cy-18, boxW, 28, withAlpha(config.HUDBackground, 1), config.TextColor)

	// 光标每半秒闪烁
	cursor := ""
	if m.clock().UnixMilli()/500%2 == 0 {
		cursor = "_"
	}
	drawText(screen, string(m.name)+cursor, cx-boxW/2+8, cy-10, config.TextColor, text.AlignStart)

	if m.errMsg != "" {
		drawText(screen, m.errMsg, cx, cy+20, config.WarningColor, text.AlignCenter)
	}

	start, scoreboard := m.buttons()
	start.draw(screen, m.viewport)
	scoreboard.draw(screen, m.viewport)

	settings := m.state.Settings.GetSettings()
	sound := fmt.Sprintf("%.0f%%", settings.SoundVolume*100)
	if !settings.SoundEnabled {
		sound = "off"
	}
	drawText(screen, fmt.Sprintf("Enter: start   Tab: scoreboard   F2: sound %s   Up/Down: volume", sound), cx, h-30, config.TextColor, text.AlignCenter)
}

// SaveOnExit 退出时保存设置
func (m *MenuScene) SaveOnExit() bool {
	if err := m.state.Settings.Save(); err != nil {
		log.Printf("[MenuScene] Warning: Failed to save settings on exit: %v", err)
		return false
	}
	return true
}

// editName 把本帧输入的字符追加到名字末尾
// 控制字符被忽略；长度按 rune 计，超过上限的字符被丢弃
func editName(name []rune, chars []rune, backspace bool) []rune {
	if backspace && len(name) > 0 {
		name = name[:len(name)-1]
	}
	for _, r := range chars {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if len(name) >= game.MaxPlayerNameLength {
			break
		}
		name = append(name, r)
	}
	return name
}
