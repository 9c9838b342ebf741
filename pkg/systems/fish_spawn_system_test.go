package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/fishtap/pkg/config"
)

var testBounds = Bounds{Width: 800, Height: 600}

// TestTrySpawnPeriodicDelay 间隔未到不生成，到点生成
func TestTrySpawnPeriodicDelay(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	curve := NewDifficultyCurve(cfg)
	params := curve.At(0)

	tests := []struct {
		name        string
		now         time.Time
		wantSpawned bool
		wantLast    time.Time
		wantCount   int
	}{
		{"before delay", at(499), false, at(0), 0},
		{"exactly at delay", at(500), true, at(500), 2},
		{"after delay", at(750), true, at(750), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.5))
			spawned, last, fish := spawner.TrySpawnPeriodic(tt.now, at(0), params, testBounds)
			if spawned != tt.wantSpawned {
				t.Errorf("spawned = %v, want %v", spawned, tt.wantSpawned)
			}
			if !last.Equal(tt.wantLast) {
				t.Errorf("lastSpawnAt = %v, want %v", last.UnixMilli(), tt.wantLast.UnixMilli())
			}
			if len(fish) != tt.wantCount {
				t.Errorf("got %d fish, want %d", len(fish), tt.wantCount)
			}
		})
	}
}

// TestTrySpawnPeriodicNeverSpawned 零值 lastSpawnAt 视为很久以前，首次调用即生成
func TestTrySpawnPeriodicNeverSpawned(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.5))

	spawned, _, fish := spawner.TrySpawnPeriodic(at(10), time.Time{}, NewDifficultyCurve(cfg).At(0), testBounds)
	if !spawned || len(fish) != 2 {
		t.Errorf("expected 2 fish on first call, got spawned=%v count=%d", spawned, len(fish))
	}
}

// TestTrySpawnPeriodicEndPhaseSkip 末段跳过也推进 lastSpawnAt
func TestTrySpawnPeriodicEndPhaseSkip(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(20)

	// 0.1 < 0.4：跳过
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.1))
	spawned, last, fish := spawner.TrySpawnPeriodic(at(21600), at(20000), params, testBounds)
	if spawned || fish != nil {
		t.Errorf("expected skip, got spawned=%v fish=%d", spawned, len(fish))
	}
	if !last.Equal(at(21600)) {
		t.Errorf("skip should advance lastSpawnAt to now, got %d", last.UnixMilli())
	}
	if spawner.NextID() != 1 {
		t.Errorf("skip must not consume IDs, next = %d", spawner.NextID())
	}

	// 0.9 >= 0.4：生成一条
	spawner = NewFishSpawnSystem(cfg, newScriptedRandom(0.9))
	spawned, last, fish = spawner.TrySpawnPeriodic(at(21600), at(20000), params, testBounds)
	if !spawned || len(fish) != 1 {
		t.Fatalf("expected one fish, got spawned=%v count=%d", spawned, len(fish))
	}
	if !last.Equal(at(21600)) {
		t.Errorf("lastSpawnAt = %d, want 21600", last.UnixMilli())
	}
}

// TestTrySpawnPeriodicSkipOnlyInEndPhase 前两个阶段不掷跳过骰子
func TestTrySpawnPeriodicSkipOnlyInEndPhase(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.0))

	spawned, _, fish := spawner.TrySpawnPeriodic(at(12000), at(11000), NewDifficultyCurve(cfg).At(11), testBounds)
	if !spawned || len(fish) != 1 {
		t.Errorf("mid phase should always spawn when due, got spawned=%v count=%d", spawned, len(fish))
	}
}

// TestTrySpawnPeriodicInvalidBounds 画布无效时不生成且不推进时间
func TestTrySpawnPeriodicInvalidBounds(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.5))

	spawned, last, _ := spawner.TrySpawnPeriodic(at(1000), at(0), NewDifficultyCurve(cfg).At(1), Bounds{})
	if spawned {
		t.Error("should not spawn on empty surface")
	}
	if !last.Equal(at(0)) {
		t.Errorf("lastSpawnAt should stay at 0, got %d", last.UnixMilli())
	}
}

// TestSpawnRandomPosition 随机位置落在边距内
func TestSpawnRandomPosition(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(0)

	tests := []struct {
		name   string
		value  float64
		wantX  float64
		wantY  float64
		bounds Bounds
	}{
		{"centre", 0.5, 400, 300, testBounds},
		{"low edge", 0, 65, 65, testBounds},
		{"tiny surface uses centre", 0.3, 50, 40, Bounds{Width: 100, Height: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spawner := NewFishSpawnSystem(cfg, newScriptedRandom(tt.value))
			fish := spawner.SpawnBurst(1, nil, params, tt.bounds, at(0))
			if len(fish) != 1 {
				t.Fatalf("expected 1 fish, got %d", len(fish))
			}
			if math.Abs(fish[0].X-tt.wantX) > 1e-9 || math.Abs(fish[0].Y-tt.wantY) > 1e-9 {
				t.Errorf("position = (%v, %v), want (%v, %v)", fish[0].X, fish[0].Y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestSpawnBurstRing 奖励鱼分布在锚点周围的圆环上
func TestSpawnBurstRing(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(0)
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0))

	anchor := &Point{X: 400, Y: 300}
	fish := spawner.SpawnBurst(4, anchor, params, testBounds, at(0))
	if len(fish) != 4 {
		t.Fatalf("expected 4 fish, got %d", len(fish))
	}

	// 距离 50，角度 0 / 90 / 180 / 270 度
	want := []Point{{450, 300}, {400, 350}, {350, 300}, {400, 250}}
	for i, f := range fish {
		if math.Abs(f.X-want[i].X) > 1e-9 || math.Abs(f.Y-want[i].Y) > 1e-9 {
			t.Errorf("fish %d at (%v, %v), want (%v, %v)", i, f.X, f.Y, want[i].X, want[i].Y)
		}
	}
}

// TestSpawnBurstClampedToSurface 靠近角落的奖励鱼被夹回画布
func TestSpawnBurstClampedToSurface(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(0)
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.99))

	fish := spawner.SpawnBurst(5, &Point{X: 5, Y: 590}, params, testBounds, at(0))
	for _, f := range fish {
		if f.X < f.Radius || f.X > testBounds.Width-f.Radius {
			t.Errorf("fish %d x=%v outside [%v, %v]", f.ID, f.X, f.Radius, testBounds.Width-f.Radius)
		}
		if f.Y < f.Radius || f.Y > testBounds.Height-f.Radius {
			t.Errorf("fish %d y=%v outside [%v, %v]", f.ID, f.Y, f.Radius, testBounds.Height-f.Radius)
		}
	}
}

// TestSpawnFishInitialState 新鱼的初始状态与寿命区间
func TestSpawnFishInitialState(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(0)

	// 随机位置 x, y；寿命；相位；速度
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.5, 0.5, 0.25, 0.5, 1))
	fish := spawner.SpawnBurst(1, nil, params, testBounds, at(1234))
	f := fish[0]

	if f.ID != 1 {
		t.Errorf("first ID = %d, want 1", f.ID)
	}
	if f.Lifetime != 2250*time.Millisecond {
		t.Errorf("lifetime = %v, want 2.25s", f.Lifetime)
	}
	if !f.CreatedAt.Equal(at(1234)) {
		t.Errorf("createdAt = %d, want 1234", f.CreatedAt.UnixMilli())
	}
	if f.Scale != 0 || f.Fade != 1 || f.Hit {
		t.Errorf("unexpected initial state: scale=%v fade=%v hit=%v", f.Scale, f.Fade, f.Hit)
	}
	if f.Radius != 35 {
		t.Errorf("radius = %v, want 35", f.Radius)
	}
	if math.Abs(f.SwimPhase-math.Pi) > 1e-9 {
		t.Errorf("swim phase = %v, want pi", f.SwimPhase)
	}
	if math.Abs(f.SwimSpeed-0.004) > 1e-12 {
		t.Errorf("swim speed = %v, want 0.004", f.SwimSpeed)
	}
}

// TestSpawnIDsSequential ID 单调递增且不复用
func TestSpawnIDsSequential(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	params := NewDifficultyCurve(cfg).At(0)
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.3, 0.7))

	var ids []uint64
	for i := 0; i < 3; i++ {
		for _, f := range spawner.SpawnBurst(2, nil, params, testBounds, at(int64(i*500))) {
			ids = append(ids, f.ID)
		}
	}
	for i, id := range ids {
		if id != uint64(i+1) {
			t.Errorf("ids[%d] = %d, want %d", i, id, i+1)
		}
	}
	if spawner.NextID() != 7 {
		t.Errorf("NextID() = %d, want 7", spawner.NextID())
	}
}

// TestSpawnBurstZeroCount 数量为 0 时返回空
func TestSpawnBurstZeroCount(t *testing.T) {
	cfg := config.DefaultRoundConfig()
	spawner := NewFishSpawnSystem(cfg, newScriptedRandom(0.5))
	if fish := spawner.SpawnBurst(0, nil, NewDifficultyCurve(cfg).At(0), testBounds, at(0)); len(fish) != 0 {
		t.Errorf("expected no fish, got %d", len(fish))
	}
}
