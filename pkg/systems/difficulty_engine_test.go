package systems

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/fishtap/pkg/config"
)

// TestDifficultyPhases 测试阶段划分与边界
func TestDifficultyPhases(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultRoundConfig())

	tests := []struct {
		name    string
		elapsed float64
		want    DifficultyPhase
	}{
		{"start", 0, PhaseEarly},
		{"early", 5, PhaseEarly},
		{"just before 10", 9.999, PhaseEarly},
		{"exactly 10", 10, PhaseMid},
		{"mid", 15, PhaseMid},
		{"exactly 20", 20, PhaseEnd},
		{"end", 25, PhaseEnd},
		{"round over", 30, PhaseEnd},
		{"past round", 45, PhaseEnd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := curve.At(tt.elapsed).Phase
			if got != tt.want {
				t.Errorf("At(%v).Phase = %v, want %v", tt.elapsed, got, tt.want)
			}
		})
	}
}

// TestDifficultyEarlyAndMidParams 测试前两个阶段的固定参数
func TestDifficultyEarlyAndMidParams(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultRoundConfig())

	early := curve.At(3)
	if early.SpawnDelay != 500*time.Millisecond {
		t.Errorf("early spawn delay = %v, want 500ms", early.SpawnDelay)
	}
	if early.MinLifetime != 2000*time.Millisecond || early.MaxLifetime != 3000*time.Millisecond {
		t.Errorf("early lifetime = [%v, %v], want [2s, 3s]", early.MinLifetime, early.MaxLifetime)
	}
	if early.PeriodicCount != 2 || early.BurstCount != 5 {
		t.Errorf("early counts = periodic %d burst %d, want 2/5", early.PeriodicCount, early.BurstCount)
	}
	if early.SkipChance != 0 {
		t.Errorf("early skip chance = %v, want 0", early.SkipChance)
	}

	mid := curve.At(12)
	if mid.SpawnDelay != 700*time.Millisecond {
		t.Errorf("mid spawn delay = %v, want 700ms", mid.SpawnDelay)
	}
	if mid.MinLifetime != 1500*time.Millisecond || mid.MaxLifetime != 2000*time.Millisecond {
		t.Errorf("mid lifetime = [%v, %v], want [1.5s, 2s]", mid.MinLifetime, mid.MaxLifetime)
	}
	if mid.PeriodicCount != 1 || mid.BurstCount != 3 {
		t.Errorf("mid counts = periodic %d burst %d, want 1/3", mid.PeriodicCount, mid.BurstCount)
	}
}

// TestDifficultyEndPhaseScarcity 测试末段随时间变稀缺
func TestDifficultyEndPhaseScarcity(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultRoundConfig())

	tests := []struct {
		elapsed   float64
		wantDelay time.Duration
		wantMin   time.Duration
		wantMax   time.Duration
	}{
		// p = 0
		{20, 1500 * time.Millisecond, 500 * time.Millisecond, 800 * time.Millisecond},
		// p = 0.25
		{25, 1750 * time.Millisecond, 437500 * time.Microsecond, 740 * time.Millisecond},
		// p = 1
		{30, 2500 * time.Millisecond, 250 * time.Millisecond, 560 * time.Millisecond},
	}

	for _, tt := range tests {
		p := curve.At(tt.elapsed)
		if !durationNear(p.SpawnDelay, tt.wantDelay) {
			t.Errorf("At(%v).SpawnDelay = %v, want %v", tt.elapsed, p.SpawnDelay, tt.wantDelay)
		}
		if !durationNear(p.MinLifetime, tt.wantMin) {
			t.Errorf("At(%v).MinLifetime = %v, want %v", tt.elapsed, p.MinLifetime, tt.wantMin)
		}
		if !durationNear(p.MaxLifetime, tt.wantMax) {
			t.Errorf("At(%v).MaxLifetime = %v, want %v", tt.elapsed, p.MaxLifetime, tt.wantMax)
		}
		if p.PeriodicCount != 1 || p.BurstCount != 1 {
			t.Errorf("At(%v) counts = %d/%d, want 1/1", tt.elapsed, p.PeriodicCount, p.BurstCount)
		}
		if p.SkipChance != 0.4 {
			t.Errorf("At(%v).SkipChance = %v, want 0.4", tt.elapsed, p.SkipChance)
		}
	}
}

// TestDifficultyEndPhaseMonotonic 末段间隔单调不减，寿命单调不增
func TestDifficultyEndPhaseMonotonic(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultRoundConfig())

	prev := curve.At(20)
	for e := 20.1; e <= 30; e += 0.1 {
		cur := curve.At(e)
		if cur.SpawnDelay < prev.SpawnDelay {
			t.Fatalf("spawn delay decreased at %.1f: %v < %v", e, cur.SpawnDelay, prev.SpawnDelay)
		}
		if cur.MinLifetime > prev.MinLifetime || cur.MaxLifetime > prev.MaxLifetime {
			t.Fatalf("lifetime grew at %.1f", e)
		}
		if cur.MinLifetime > cur.MaxLifetime {
			t.Fatalf("min lifetime above max at %.1f", e)
		}
		prev = cur
	}
}

// TestScarcityFactor 测试稀缺因子的取值范围
func TestScarcityFactor(t *testing.T) {
	curve := NewDifficultyCurve(config.DefaultRoundConfig())

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 0},
		{19, 0},
		{20, 0},
		{25, 0.25},
		{30, 1},
		{60, 1},
	}
	for _, tt := range tests {
		got := curve.ScarcityFactor(tt.elapsed)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ScarcityFactor(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestDifficultyPhaseString(t *testing.T) {
	if PhaseEarly.String() != "early" || PhaseMid.String() != "mid" || PhaseEnd.String() != "end" {
		t.Error("unexpected phase names")
	}
	if DifficultyPhase(7).String() != "unknown" {
		t.Error("out-of-range phase should be unknown")
	}
}

// durationNear 浮点换算后允许 1 微秒误差
func durationNear(got, want time.Duration) bool {
	d := got - want
	return d > -time.Microsecond && d < time.Microsecond
}
