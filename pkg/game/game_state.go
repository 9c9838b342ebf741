package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/systems"
)

// ToastLevel 提示级别
type ToastLevel int

const (
	ToastSuccess ToastLevel = iota
	ToastWarning
)

// Toast 一条短暂显示的提示
type Toast struct {
	Level     ToastLevel
	Message   string
	ExpiresAt time.Time
}

// Visible 提示在 now 时是否仍显示
func (t Toast) Visible(now time.Time) bool {
	return t.Message != "" && now.Before(t.ExpiresAt)
}

// GameState 跨场景共享的会话状态
// 由 App 创建并注入各场景；与回合一样由主循环 goroutine 独占
type GameState struct {
	Config   *config.RoundConfig
	Settings *SettingsManager
	Store    ScoreStore
	Reporter *ScoreReporter
	Audio    *AudioManager

	PlayerName   string
	LastScore    int
	RoundsPlayed int

	generation         uint64
	toast              Toast
	newRandom          func() systems.RandomSource
	leaderboardVersion int // 每次成绩提交成功后递增，结果页据此重新拉取
}

// NewGameState 创建会话状态
// seed 非零时回合随机数可复现
func NewGameState(cfg *config.RoundConfig, settings *SettingsManager, store ScoreStore, audioManager *AudioManager, seed int64) *GameState {
	if settings == nil {
		settings = NewSettingsManager(nil)
	}
	gs := &GameState{
		Config:     cfg,
		Settings:   settings,
		Store:      store,
		Reporter:   NewScoreReporter(store, cfg.SubmitTimeout()),
		Audio:      audioManager,
		PlayerName: settings.GetSettings().LastPlayerName,
	}

	rounds := int64(0)
	gs.newRandom = func() systems.RandomSource {
		if seed == 0 {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		rounds++
		return rand.New(rand.NewSource(seed + rounds - 1))
	}
	return gs
}

// SetPlayerName 校验并记录玩家名，同时持久化为下次的默认值
func (gs *GameState) SetPlayerName(raw string) error {
	name, err := ValidatePlayerName(raw)
	if err != nil {
		return err
	}
	gs.PlayerName = name
	gs.Settings.SetLastPlayerName(name)
	if err := gs.Settings.Save(); err != nil {
		log.Printf("[GameState] Warning: Failed to save settings: %v", err)
	}
	return nil
}

// NewRound 为新的一局创建回合，并开启新的提交代
// 回合结束时自动在后台提交成绩
func (gs *GameState) NewRound() *Round {
	gs.generation = gs.Reporter.BeginRound()
	gen := gs.generation
	name := gs.PlayerName

	return NewRound(gs.Config, gs.newRandom(), func(score int) {
		gs.LastScore = score
		gs.RoundsPlayed++
		if gs.Store != nil {
			gs.Reporter.Submit(gen, name, score)
		}
	})
}

// PollSubmission 取回当前代的提交结果并转换为提示
func (gs *GameState) PollSubmission(now time.Time) (SubmitResult, bool) {
	res, ok := gs.Reporter.Poll()
	if !ok {
		return res, false
	}

	if res.Err != nil {
		gs.ShowToast(ToastWarning, fmt.Sprintf("Score saved locally. %v", res.Err), now)
	} else {
		gs.ShowToast(ToastSuccess, fmt.Sprintf("Score of %d saved successfully!", res.Score), now)
		gs.leaderboardVersion++
	}
	return res, true
}

// LeaderboardVersion 成功提交的次数，变化时结果页应重新拉取
func (gs *GameState) LeaderboardVersion() int {
	return gs.leaderboardVersion
}

// ShowToast 显示一条提示，覆盖之前的提示
func (gs *GameState) ShowToast(level ToastLevel, message string, now time.Time) {
	gs.toast = Toast{
		Level:     level,
		Message:   message,
		ExpiresAt: now.Add(time.Duration(config.ToastDurationSeconds * float64(time.Second))),
	}
}

// CurrentToast 返回当前仍可见的提示
func (gs *GameState) CurrentToast(now time.Time) (Toast, bool) {
	if !gs.toast.Visible(now) {
		return Toast{}, false
	}
	return gs.toast, true
}
