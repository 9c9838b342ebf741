package game

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/systems"
)

func newTestGameState(store ScoreStore) *GameState {
	return NewGameState(config.DefaultRoundConfig(), NewSettingsManager(nil), store, nil, 42)
}

// TestGameStateSetPlayerName 名字经过校验并写入设置
func TestGameStateSetPlayerName(t *testing.T) {
	gs := newTestGameState(&stubStore{})

	if err := gs.SetPlayerName("  Nemo "); err != nil {
		t.Fatalf("SetPlayerName error: %v", err)
	}
	if gs.PlayerName != "Nemo" {
		t.Errorf("PlayerName = %q, want Nemo", gs.PlayerName)
	}
	if gs.Settings.GetSettings().LastPlayerName != "Nemo" {
		t.Error("last player name should be remembered")
	}

	if err := gs.SetPlayerName(""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
	if gs.PlayerName != "Nemo" {
		t.Error("invalid name must not replace the current one")
	}
}

// TestGameStatePrefillsName 从设置中预填玩家名
func TestGameStatePrefillsName(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetLastPlayerName("Marlin")
	gs := NewGameState(config.DefaultRoundConfig(), sm, nil, nil, 0)
	if gs.PlayerName != "Marlin" {
		t.Errorf("PlayerName = %q, want Marlin", gs.PlayerName)
	}
}

// TestGameStateRoundSubmitsOnFinish 回合结束后提交成绩并给出成功提示
func TestGameStateRoundSubmitsOnFinish(t *testing.T) {
	store := &stubStore{}
	gs := newTestGameState(store)
	_ = gs.SetPlayerName("Nemo")

	start := time.Unix(1000, 0)
	r := gs.NewRound()
	r.Start(start)
	r.Tick(start.Add(31*time.Second), systems.Bounds{Width: 800, Height: 600})
	if r.Phase() != RoundFinished {
		t.Fatalf("phase = %v, want finished", r.Phase())
	}
	gs.Reporter.Wait()

	now := start.Add(32 * time.Second)
	res, ok := gs.PollSubmission(now)
	if !ok || res.Err != nil {
		t.Fatalf("PollSubmission = %+v, %v", res, ok)
	}
	if len(store.submitted) != 1 || store.submitted[0].Name != "Nemo" {
		t.Errorf("store received %+v", store.submitted)
	}
	if gs.LastScore != 0 || gs.RoundsPlayed != 1 {
		t.Errorf("LastScore=%d RoundsPlayed=%d", gs.LastScore, gs.RoundsPlayed)
	}
	if gs.LeaderboardVersion() != 1 {
		t.Errorf("LeaderboardVersion = %d, want 1", gs.LeaderboardVersion())
	}

	toast, ok := gs.CurrentToast(now)
	if !ok || toast.Level != ToastSuccess || toast.Message != "Score of 0 saved successfully!" {
		t.Errorf("toast = %+v, %v", toast, ok)
	}
	if _, ok := gs.CurrentToast(now.Add(5 * time.Second)); ok {
		t.Error("toast should expire after 5 seconds")
	}
}

// TestGameStateSubmitFailureToast 提交失败显示警告提示
func TestGameStateSubmitFailureToast(t *testing.T) {
	gs := newTestGameState(&stubStore{submitErr: errors.New("offline")})
	_ = gs.SetPlayerName("Nemo")

	start := time.Unix(1000, 0)
	r := gs.NewRound()
	r.Start(start)
	r.Tick(start.Add(30*time.Second), systems.Bounds{Width: 800, Height: 600})
	gs.Reporter.Wait()

	if _, ok := gs.PollSubmission(start); !ok {
		t.Fatal("expected a submission result")
	}
	toast, ok := gs.CurrentToast(start)
	if !ok || toast.Level != ToastWarning || !strings.HasPrefix(toast.Message, "Score saved locally. ") {
		t.Errorf("toast = %+v", toast)
	}
	if gs.LeaderboardVersion() != 0 {
		t.Error("failed submission must not bump the leaderboard version")
	}
}

// TestGameStateStaleRoundIgnored 新回合开始后旧回合的结果被忽略
func TestGameStateStaleRoundIgnored(t *testing.T) {
	gs := newTestGameState(&stubStore{})
	start := time.Unix(1000, 0)

	first := gs.NewRound()
	first.Start(start)
	first.Tick(start.Add(30*time.Second), systems.Bounds{Width: 800, Height: 600})
	gs.Reporter.Wait()

	gs.NewRound()
	if _, ok := gs.PollSubmission(start); ok {
		t.Error("result of the previous round should be dropped")
	}
}

// TestGameStateSeededRounds 相同种子得到相同的回合
func TestGameStateSeededRounds(t *testing.T) {
	play := func() []float64 {
		gs := newTestGameState(nil)
		r := gs.NewRound()
		start := time.Unix(0, 0)
		r.Start(start)
		r.Tick(start.Add(16*time.Millisecond), systems.Bounds{Width: 800, Height: 600})
		var xs []float64
		for _, f := range r.Fish() {
			xs = append(xs, f.X, f.Y)
		}
		return xs
	}

	a, b := play(), play()
	if len(a) == 0 || len(a) != len(b) {
		t.Fatalf("unexpected fish counts: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("seeded rounds differ at %d: %v vs %v", i, a[i], b[i])
		}
	}
}
