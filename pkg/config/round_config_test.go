package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseRoundConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *RoundConfig)
	}{
		{
			name: "partial override keeps defaults",
			yamlContent: `
durationSeconds: 45
phases:
  end:
    skipProbability: 0.25
`,
			validate: func(t *testing.T, cfg *RoundConfig) {
				if cfg.DurationSeconds != 45 {
					t.Errorf("expected duration 45, got %v", cfg.DurationSeconds)
				}
				if cfg.Phases.End.SkipProbability != 0.25 {
					t.Errorf("expected skip probability 0.25, got %v", cfg.Phases.End.SkipProbability)
				}
				// inline 的基础字段保持默认
				if cfg.Phases.End.SpawnDelayMs != 1500 {
					t.Errorf("expected end spawn delay 1500, got %d", cfg.Phases.End.SpawnDelayMs)
				}
				if cfg.FishRadius != 35 {
					t.Errorf("expected default radius 35, got %v", cfg.FishRadius)
				}
			},
		},
		{
			name: "end phase inline fields",
			yamlContent: `
phases:
  end:
    spawnDelayMs: 1200
    minLifetimeMs: 400
    maxLifetimeMs: 600
`,
			validate: func(t *testing.T, cfg *RoundConfig) {
				end := cfg.Phases.End
				if end.SpawnDelayMs != 1200 || end.MinLifetimeMs != 400 || end.MaxLifetimeMs != 600 {
					t.Errorf("unexpected end phase: %+v", end.PhaseConfig)
				}
			},
		},
		{
			name:        "zero duration",
			yamlContent: "durationSeconds: 0\n",
			wantErr:     true,
			errContains: "durationSeconds must be > 0",
		},
		{
			name: "mid boundary beyond duration",
			yamlContent: `
durationSeconds: 15
`,
			wantErr:     true,
			errContains: "phase boundaries",
		},
		{
			name: "inverted lifetime range",
			yamlContent: `
phases:
  mid:
    minLifetimeMs: 2500
    maxLifetimeMs: 2000
`,
			wantErr:     true,
			errContains: "phases.mid lifetime range",
		},
		{
			name: "skip probability out of range",
			yamlContent: `
phases:
  end:
    skipProbability: 1.5
`,
			wantErr:     true,
			errContains: "skipProbability",
		},
		{
			name: "ease fraction too large",
			yamlContent: `
lifecycle:
  easeInFraction: 0.6
`,
			wantErr:     true,
			errContains: "ease fractions",
		},
		{
			name:        "malformed yaml",
			yamlContent: "durationSeconds: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse round config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseRoundConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	_, err := ParseRoundConfig([]byte("fishRadius: -1\n"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDefaultRoundConfigIsValid(t *testing.T) {
	if err := validateRoundConfig(DefaultRoundConfig()); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestLoadRoundConfigFromFile(t *testing.T) {
	// 仓库内置的配置文件必须与默认值一致
	cfg, err := LoadRoundConfig(filepath.Join("..", "..", "data", "round.yaml"))
	if err != nil {
		t.Fatalf("LoadRoundConfig() error: %v", err)
	}

	def := DefaultRoundConfig()
	if cfg.Phases != def.Phases {
		t.Errorf("phases mismatch:\n file: %+v\n default: %+v", cfg.Phases, def.Phases)
	}
	if cfg.Lifecycle != def.Lifecycle || cfg.Swim != def.Swim || cfg.Burst != def.Burst {
		t.Error("lifecycle/swim/burst from data/round.yaml differ from defaults")
	}
}

func TestLoadRoundConfigMissingFile(t *testing.T) {
	_, err := LoadRoundConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist in chain, got %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultRoundConfig()
	if cfg.Duration() != 30*time.Second {
		t.Errorf("Duration() = %v, want 30s", cfg.Duration())
	}
	if cfg.BurstDelay() != 100*time.Millisecond {
		t.Errorf("BurstDelay() = %v, want 100ms", cfg.BurstDelay())
	}
	if cfg.SubmitTimeout() != 10*time.Second {
		t.Errorf("SubmitTimeout() = %v, want 10s", cfg.SubmitTimeout())
	}
}
