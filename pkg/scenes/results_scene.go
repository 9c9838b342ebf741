package scenes

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// 排行榜面板尺寸
const (
	leaderboardRowHeight = 20.0
	leaderboardWidth     = 380.0
)

// 底部按钮尺寸
const (
	resultsButtonWidth  = 160.0
	resultsButtonHeight = 36.0
)

// ResultsScene 结算界面：本局得分与排行榜
// 排行榜在后台拉取，本局成绩提交成功后自动重新拉取一次
// viewOnly 时从菜单进入，只显示排行榜，返回菜单
type ResultsScene struct {
	state        *game.GameState
	sceneManager *game.SceneManager
	viewport     *Viewport
	clock        Clock
	viewOnly     bool

	fetch        <-chan game.FetchResult
	cancel       context.CancelFunc
	fetchedFor   int
	loading      bool
	entries      []game.Entry
	status       string
	highlightRow int
}

// NewResultsScene 创建结算场景并立即开始拉取排行榜
func NewResultsScene(gs *game.GameState, sm *game.SceneManager, vp *Viewport, clock Clock) *ResultsScene {
	r := &ResultsScene{
		state:        gs,
		sceneManager: sm,
		viewport:     vp,
		clock:        clock,
		highlightRow: -1,
	}
	r.startFetch()
	return r
}

// NewScoreboardScene 创建只读排行榜场景
func NewScoreboardScene(gs *game.GameState, sm *game.SceneManager, vp *Viewport, clock Clock) *ResultsScene {
	r := NewResultsScene(gs, sm, vp, clock)
	r.viewOnly = true
	return r
}

func (r *ResultsScene) startFetch() {
	r.fetchedFor = r.state.LeaderboardVersion()
	if r.state.Store == nil {
		r.status = "Leaderboard unavailable"
		return
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.state.Config.SubmitTimeout())
	r.cancel = cancel
	r.fetch = game.FetchScoresAsync(ctx, r.state.Store)
	r.loading = true
	r.status = "Loading leaderboard..."
}

// Update 非阻塞地收取拉取结果并处理按键
func (r *ResultsScene) Update(deltaTime float64) {
	if r.state.LeaderboardVersion() != r.fetchedFor {
		r.startFetch()
	}

	if r.loading {
		select {
		case res, ok := <-r.fetch:
			if ok {
				r.applyFetch(res)
			}
		default:
		}
	}

	// 只响应按键与按钮，按钮外的点击忽略
	confirm := inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		r.actionButton().clicked(r.viewport)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		r.leave(game.SceneMenu)
	case confirm && r.viewOnly:
		r.leave(game.SceneMenu)
	case confirm:
		r.leave(game.SceneGame)
	}
}

// actionButton 底部按钮：结算时再玩一局，只读时返回菜单
func (r *ResultsScene) actionButton() button {
	label := "Play again"
	if r.viewOnly {
		label = "Back"
	}
	y := r.viewport.Surface.Height - 80
	return centeredButton(label, r.viewport.Surface.Width/2, y, resultsButtonWidth, resultsButtonHeight)
}

func (r *ResultsScene) applyFetch(res game.FetchResult) {
	r.loading = false
	r.cancel()
	r.entries = res.Entries
	if !r.viewOnly {
		r.highlightRow = highlightIndex(r.entries, r.state.PlayerName, r.state.LastScore)
	}

	switch {
	case res.Err == nil:
		r.status = ""
	case errors.Is(res.Err, game.ErrNotConfigured):
		r.status = "Offline: showing local scores"
	case len(res.Entries) > 0:
		log.Printf("[ResultsScene] Warning: leaderboard fetch failed: %v", res.Err)
		r.status = "Leaderboard offline: showing local scores"
	default:
		log.Printf("[ResultsScene] Warning: leaderboard fetch failed: %v", res.Err)
		r.status = "Could not load leaderboard"
	}
}

func (r *ResultsScene) leave(sceneID string) {
	if r.cancel != nil {
		r.cancel()
	}
	r.sceneManager.Load(sceneID)
}

// Draw 绘制得分与排行榜
func (r *ResultsScene) Draw(screen *ebiten.Image) {
	w := r.viewport.Surface.Width
	h := r.viewport.Surface.Height
	drawWater(screen, w, h, r.clock())

	cx := w / 2
	if r.viewOnly {
		drawScaledText(screen, "Scoreboard", cx, 40, 3, config.TextColor)
	} else {
		drawScaledText(screen, "Time's up!", cx, 40, 3, config.TextColor)
		drawScaledText(screen, fmt.Sprintf("%s scored %d", r.state.PlayerName, r.state.LastScore), cx, 100, 2, config.HighlightColor)
	}

	panelW := leaderboardWidth
	panelX := cx - panelW/2
	panelY := 150.0
	panelH := leaderboardRowHeight*float64(config.LeaderboardVisibleRows) + 44
	drawPanel(screen, panelX, panelY, panelW, panelH, withAlpha(config.HUDBackground, 1), config.TextColor)
	drawText(screen, "Leaderboard", cx, panelY+8, config.TextColor, text.AlignCenter)

	rowY := panelY + 32
	for i, e := range r.entries {
		if i >= config.LeaderboardVisibleRows {
			break
		}
		clr := config.TextColor
		if i == r.highlightRow {
			clr = config.HighlightColor
		}
		row := formatLeaderboardRow(i+1, e)
		drawText(screen, row.name, panelX+16, rowY, clr, text.AlignStart)
		drawText(screen, row.date, panelX+panelW-70, rowY, clr, text.AlignEnd)
		drawText(screen, row.score, panelX+panelW-16, rowY, clr, text.AlignEnd)
		rowY += leaderboardRowHeight
	}
	if len(r.entries) == 0 && !r.loading && r.status == "" {
		drawText(screen, "No scores yet", cx, rowY, config.TextColor, text.AlignCenter)
	}

	if r.status != "" {
		drawText(screen, r.status, cx, panelY+panelH+10, config.WarningColor, text.AlignCenter)
	}
	r.actionButton().draw(screen, r.viewport)
	hint := "Enter: play again   Esc: menu"
	if r.viewOnly {
		hint = "Enter / Esc: back"
	}
	drawText(screen, hint, cx, h-30, config.TextColor, text.AlignCenter)
}

// leaderboardRow 排行榜一行的三列文字
type leaderboardRow struct {
	name  string
	date  string
	score string
}

func formatLeaderboardRow(rank int, e game.Entry) leaderboardRow {
	return leaderboardRow{
		name:  fmt.Sprintf("%2d. %s", rank, e.Name),
		date:  game.FormatRecordedAt(e.RecordedAt),
		score: fmt.Sprintf("%d", e.Score),
	}
}

// highlightIndex 返回排行榜中代表本局成绩的行
// 同名同分的记录取最靠前的一条，找不到时返回 -1
func highlightIndex(entries []game.Entry, name string, score int) int {
	for i, e := range entries {
		if e.Name == name && e.Score == score {
			return i
		}
	}
	return -1
}
