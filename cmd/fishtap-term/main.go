// fishtap-term 在终端里玩同一套捕鱼回合
// 鼠标点击单元格即点击画布上对应的位置
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/decker502/fishtap/pkg/app"
	"github.com/decker502/fishtap/pkg/components"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/ecs"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/systems"
	"github.com/gdamore/tcell/v2"
	"github.com/quasilyte/gdata/v2"
)

var (
	playerName     = flag.String("name", "", "玩家名(默认使用上次的名字)")
	configPath     = flag.String("config", "", "回合配置文件路径")
	leaderboardURL = flag.String("leaderboard-url", os.Getenv("FISHTAP_SUPABASE_URL"), "远程排行榜地址")
	leaderboardKey = flag.String("leaderboard-key", os.Getenv("FISHTAP_SUPABASE_ANON_KEY"), "远程排行榜匿名密钥")
	seed           = flag.Int64("seed", 0, "随机种子")
	mute           = flag.Bool("mute", false, "关闭音效")
	logFile        = flag.String("log", "", "日志输出文件(终端界面占用标准输出)")
)

type termGame struct {
	screen tcell.Screen
	grid   grid
	state  *game.GameState
	sound  *soundPlayer
	splash *systems.SplashSystem

	round       *game.Round
	lastWarning int
	buttons     tcell.ButtonMask
	status      string

	fetch   <-chan game.FetchResult
	cancel  context.CancelFunc
	entries []game.Entry
}

func main() {
	flag.Parse()
	setupLogging(*logFile)

	roundConfig := config.DefaultRoundConfig()
	if *configPath != "" {
		cfg, err := config.LoadRoundConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		roundConfig = cfg
	}

	storage, err := gdata.Open(gdata.Config{AppName: "fishtap"})
	if err != nil {
		log.Printf("[Term] Warning: local storage unavailable: %v", err)
		storage = nil
	}
	settings := game.NewSettingsManager(storage)
	store := app.NewScoreStore(storage, *leaderboardURL, *leaderboardKey, roundConfig.Leaderboard.Table)
	gs := game.NewGameState(roundConfig, settings, store, nil, *seed)

	name := *playerName
	if name == "" {
		name = gs.PlayerName
	}
	if err := gs.SetPlayerName(name); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid name %q: %v (use -name)\n", name, err)
		os.Exit(1)
	}

	g, err := newTermGame(gs, !*mute && settings.GetSettings().SoundEnabled)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer g.cleanup()

	g.run()
}

func setupLogging(path string) {
	if path == "" {
		log.SetOutput(io.Discard)
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(f)
}

func newTermGame(gs *game.GameState, soundOn bool) (*termGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse(tcell.MouseButtonEvents)

	g := &termGame{
		screen: screen,
		state:  gs,
		sound:  newSoundPlayer(soundOn),
		splash: systems.NewSplashSystem(ecs.NewEntityManager()),
	}
	g.grid.cols, g.grid.rows = screen.Size()
	g.newRound()
	return g, nil
}

func (g *termGame) newRound() {
	g.round = g.state.NewRound()
	g.lastWarning = 0
	g.entries = nil
	g.splash.Clear()
}

func (g *termGame) run() {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !g.handleEvent(ev, time.Now()) {
				return
			}

		case res, ok := <-g.fetch:
			g.fetch = nil
			if ok {
				g.entries = res.Entries
				if res.Err != nil {
					g.status = "Leaderboard offline"
				}
			}

		case now := <-ticker.C:
			g.tick(now, now.Sub(last).Seconds())
			last = now
			g.draw(now)
		}
	}
}

func (g *termGame) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'r' && g.round.Phase() == game.RoundFinished:
			g.newRound()
		}

	case *tcell.EventMouse:
		// 只在按下的那一刻算一次点击
		pressed := ev.Buttons()&tcell.Button1 != 0 && g.buttons&tcell.Button1 == 0
		g.buttons = ev.Buttons()
		if !pressed || g.round.Phase() != game.RoundRunning {
			return true
		}
		col, row := ev.Position()
		if x, y, ok := g.grid.cellToCanvas(col, row); ok {
			g.tap(x, y, now)
		}

	case *tcell.EventResize:
		g.grid.cols, g.grid.rows = g.screen.Size()
		g.screen.Sync()
	}
	return true
}

func (g *termGame) tap(x, y float64, now time.Time) {
	if f, ok := g.round.Tap(x, y, now); ok {
		g.splash.SpawnHit(f.X, f.Y, f.Radius)
		g.sound.play(game.SoundHit)
		return
	}
	g.splash.SpawnMiss(x, y)
	g.sound.play(game.SoundMiss)
}

func (g *termGame) tick(now time.Time, dt float64) {
	bounds := g.grid.bounds()
	if g.round.Phase() == game.RoundIdle && bounds.Valid() {
		g.round.Start(now)
	}

	if g.round.Phase() == game.RoundRunning {
		if res := g.round.Tick(now, bounds); res.Finished {
			g.sound.play(game.SoundFinish)
			g.startFetch()
		} else if sec, ok := game.WarningSecond(g.round.RemainingSeconds()); ok && sec != g.lastWarning {
			g.lastWarning = sec
			g.sound.play(game.SoundWarning)
		}
	}

	if res, ok := g.state.PollSubmission(now); ok {
		if res.Err != nil {
			g.status = "Score saved locally"
		} else {
			g.status = fmt.Sprintf("Score of %d saved", res.Score)
		}
		// 提交完成后重新拉取，排行榜里才有本局成绩
		g.startFetch()
	}

	g.splash.Update(dt)
}

func (g *termGame) startFetch() {
	if g.state.Store == nil {
		return
	}
	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), g.state.Config.SubmitTimeout())
	g.cancel = cancel
	g.fetch = game.FetchScoresAsync(ctx, g.state.Store)
}

var (
	styleWater = tcell.StyleDefault.Background(tcell.NewRGBColor(79, 195, 247))
	styleHUD   = tcell.StyleDefault.Background(tcell.NewRGBColor(11, 79, 138)).Foreground(tcell.ColorWhite)
	styleWarn  = styleHUD.Foreground(tcell.NewRGBColor(255, 82, 82)).Bold(true)
)

func (g *termGame) draw(now time.Time) {
	s := g.screen
	s.Clear()
	s.Fill(' ', styleWater)

	for _, v := range g.splash.Views() {
		if col, row, ok := g.grid.canvasToCell(v.X, v.Y); ok {
			r := '·'
			if v.Ring {
				r = 'o'
			}
			s.SetContent(col, row, r, nil, styleWater.Foreground(tcell.NewRGBColor(int32(v.Color.R), int32(v.Color.G), int32(v.Color.B))))
		}
	}
	for _, f := range g.round.Fish() {
		g.drawFish(f)
	}

	g.drawHUD()
	if g.round.Phase() == game.RoundFinished {
		g.drawResults()
	}
	s.Show()
}

// drawFish 鱼身用实心块，按 Scale 决定占几个单元格
func (g *termGame) drawFish(f components.Fish) {
	col, row, ok := g.grid.canvasToCell(f.X, f.Y)
	if !ok || f.Fade <= 0 {
		return
	}
	shade := int32(255 * f.Fade)
	style := styleWater.Foreground(tcell.NewRGBColor(66*shade/255, 165*shade/255, 245*shade/255+10))
	body := []rune("><>")
	if f.Scale < 0.5 {
		body = []rune("°")
	}
	if f.Hit {
		body = []rune("*")
	}
	for i, r := range body {
		g.screen.SetContent(col-len(body)/2+i, row, r, nil, style)
	}
}

func (g *termGame) drawHUD() {
	g.drawText(0, 0, fmt.Sprintf(" %-*s", g.grid.cols, ""), styleHUD)
	g.drawText(1, 0, fmt.Sprintf("Score: %d  %s", g.round.Score(), g.state.PlayerName), styleHUD)

	remaining := g.round.RemainingSeconds()
	timeStyle := styleHUD
	if remaining <= config.TimeWarningSeconds {
		timeStyle = styleWarn
	}
	t := fmt.Sprintf("Time: %.1fs ", remaining)
	g.drawText(g.grid.cols-len(t), 0, t, timeStyle)
}

func (g *termGame) drawResults() {
	lines := []string{
		fmt.Sprintf("Time's up! %s scored %d", g.state.PlayerName, g.state.LastScore),
		"",
	}
	for i, e := range g.entries {
		if i >= config.LeaderboardVisibleRows {
			break
		}
		lines = append(lines, fmt.Sprintf("%2d. %-24s %-12s %5d", i+1, e.Name, game.FormatRecordedAt(e.RecordedAt), e.Score))
	}
	if g.status != "" {
		lines = append(lines, "", g.status)
	}
	lines = append(lines, "", "r: play again   q: quit")

	top := (g.grid.rows - len(lines)) / 2
	for i, line := range lines {
		g.drawText((g.grid.cols-len([]rune(line)))/2, top+i, line, styleHUD)
	}
}

func (g *termGame) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		g.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (g *termGame) cleanup() {
	if g.cancel != nil {
		g.cancel()
	}
	g.state.Reporter.Wait()
	g.sound.close()
	g.screen.Fini()
}
