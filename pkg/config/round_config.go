package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 表示回合配置未通过校验
var ErrInvalidConfig = errors.New("invalid round config")

// RoundConfig 一局游戏的全部调参
// 难度曲线、生成器、鱼的生命周期都从这里读取数值，不在代码中硬编码
type RoundConfig struct {
	DurationSeconds   float64           `yaml:"durationSeconds"`   // 回合时长(秒)
	FishRadius        float64           `yaml:"fishRadius"`        // 鱼的半径(像素)，所有鱼相同
	RandomSpawnMargin float64           `yaml:"randomSpawnMargin"` // 随机生成时在半径之外额外留出的边距
	Burst             BurstConfig       `yaml:"burst"`             // 命中后的奖励生成
	Phases            PhasesConfig      `yaml:"phases"`            // 三个难度阶段
	Lifecycle         LifecycleConfig   `yaml:"lifecycle"`         // 入场/退场缩放与淡出
	Swim              SwimConfig        `yaml:"swim"`              // 游动漂移
	Leaderboard       LeaderboardConfig `yaml:"leaderboard"`       // 排行榜协作方
}

// BurstConfig 命中后围绕被击中的鱼生成一圈新鱼
type BurstConfig struct {
	DelayMs     int     `yaml:"delayMs"`     // 命中到生成的延迟
	MinDistance float64 `yaml:"minDistance"` // 环半径下限
	MaxDistance float64 `yaml:"maxDistance"` // 环半径上限
}

// PhaseConfig 单个离散阶段的参数
type PhaseConfig struct {
	UntilSeconds  float64 `yaml:"untilSeconds"`  // 阶段结束时刻(不含)，end 阶段忽略
	SpawnDelayMs  int     `yaml:"spawnDelayMs"`  // 周期生成间隔
	MinLifetimeMs int     `yaml:"minLifetimeMs"` // 寿命下限
	MaxLifetimeMs int     `yaml:"maxLifetimeMs"` // 寿命上限
	PeriodicCount int     `yaml:"periodicCount"` // 每次周期生成的数量
	BurstCount    int     `yaml:"burstCount"`    // 命中后奖励生成的数量
}

// EndPhaseConfig 末段参数，在基础值上叠加二次方的稀缺因子
type EndPhaseConfig struct {
	PhaseConfig       `yaml:",inline"`
	SkipProbability   float64 `yaml:"skipProbability"`   // 到点后仍跳过本次生成的概率
	ExtraDelayMs      int     `yaml:"extraDelayMs"`      // 稀缺因子为 1 时额外增加的间隔
	MinLifetimeShrink float64 `yaml:"minLifetimeShrink"` // 稀缺因子为 1 时寿命下限缩减比例
	MaxLifetimeShrink float64 `yaml:"maxLifetimeShrink"` // 稀缺因子为 1 时寿命上限缩减比例
}

// PhasesConfig early/mid/end 三段
type PhasesConfig struct {
	Early PhaseConfig    `yaml:"early"`
	Mid   PhaseConfig    `yaml:"mid"`
	End   EndPhaseConfig `yaml:"end"`
}

// LifecycleConfig 鱼的缩放动画与命中淡出
type LifecycleConfig struct {
	EaseInFraction  float64 `yaml:"easeInFraction"`  // 入场占寿命比例
	EaseOutFraction float64 `yaml:"easeOutFraction"` // 退场占寿命比例
	FadeStep        float64 `yaml:"fadeStep"`        // 命中后每帧淡出步长
	HitScaleBoost   float64 `yaml:"hitScaleBoost"`   // 命中后缩放放大倍数
}

// SwimConfig 有界的正弦漂移
type SwimConfig struct {
	MinSpeed        float64 `yaml:"minSpeed"`        // 角速度下限(弧度/毫秒)
	MaxSpeed        float64 `yaml:"maxSpeed"`        // 角速度上限
	AmplitudeX      float64 `yaml:"amplitudeX"`      // 每帧X位移幅度
	AmplitudeY      float64 `yaml:"amplitudeY"`      // 每帧Y位移幅度
	YFrequencyRatio float64 `yaml:"yFrequencyRatio"` // Y方向频率相对X的比例
}

// LeaderboardConfig 排行榜协作方参数
type LeaderboardConfig struct {
	TimeoutSeconds float64 `yaml:"timeoutSeconds"` // 单次提交/拉取超时
	Table          string  `yaml:"table"`          // 远端表名
}

// Duration 返回回合时长
func (c *RoundConfig) Duration() time.Duration {
	return time.Duration(c.DurationSeconds * float64(time.Second))
}

// BurstDelay 返回命中到奖励生成的延迟
func (c *RoundConfig) BurstDelay() time.Duration {
	return time.Duration(c.Burst.DelayMs) * time.Millisecond
}

// SubmitTimeout 返回排行榜请求超时
func (c *RoundConfig) SubmitTimeout() time.Duration {
	return time.Duration(c.Leaderboard.TimeoutSeconds * float64(time.Second))
}

// DefaultRoundConfig 返回内置默认值，与 data/round.yaml 保持一致
func DefaultRoundConfig() *RoundConfig {
	return &RoundConfig{
		DurationSeconds:   30,
		FishRadius:        35,
		RandomSpawnMargin: 30,
		Burst: BurstConfig{
			DelayMs:     100,
			MinDistance: 50,
			MaxDistance: 150,
		},
		Phases: PhasesConfig{
			Early: PhaseConfig{
				UntilSeconds:  10,
				SpawnDelayMs:  500,
				MinLifetimeMs: 2000,
				MaxLifetimeMs: 3000,
				PeriodicCount: 2,
				BurstCount:    5,
			},
			Mid: PhaseConfig{
				UntilSeconds:  20,
				SpawnDelayMs:  700,
				MinLifetimeMs: 1500,
				MaxLifetimeMs: 2000,
				PeriodicCount: 1,
				BurstCount:    3,
			},
			End: EndPhaseConfig{
				PhaseConfig: PhaseConfig{
					SpawnDelayMs:  1500,
					MinLifetimeMs: 500,
					MaxLifetimeMs: 800,
					PeriodicCount: 1,
					BurstCount:    1,
				},
				SkipProbability:   0.4,
				ExtraDelayMs:      1000,
				MinLifetimeShrink: 0.5,
				MaxLifetimeShrink: 0.3,
			},
		},
		Lifecycle: LifecycleConfig{
			EaseInFraction:  0.15,
			EaseOutFraction: 0.15,
			FadeStep:        0.15,
			HitScaleBoost:   1.1,
		},
		Swim: SwimConfig{
			MinSpeed:        0.002,
			MaxSpeed:        0.004,
			AmplitudeX:      0.5,
			AmplitudeY:      0.3,
			YFrequencyRatio: 0.7,
		},
		Leaderboard: LeaderboardConfig{
			TimeoutSeconds: 10,
			Table:          "scores",
		},
	}
}

// LoadRoundConfig 从 YAML 文件加载回合配置
func LoadRoundConfig(filePath string) (*RoundConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read round config file: %w", err)
	}
	return ParseRoundConfig(data)
}

// ParseRoundConfig 解析 YAML 内容
// 未出现的字段沿用默认值，因此配置文件可以只覆盖部分参数
func ParseRoundConfig(data []byte) (*RoundConfig, error) {
	cfg := DefaultRoundConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse round config YAML: %w", err)
	}

	if err := validateRoundConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateRoundConfig 验证配置的有效性
func validateRoundConfig(cfg *RoundConfig) error {
	if cfg.DurationSeconds <= 0 {
		return fmt.Errorf("%w: durationSeconds must be > 0, got %v", ErrInvalidConfig, cfg.DurationSeconds)
	}
	if cfg.FishRadius <= 0 {
		return fmt.Errorf("%w: fishRadius must be > 0, got %v", ErrInvalidConfig, cfg.FishRadius)
	}
	if cfg.RandomSpawnMargin < 0 {
		return fmt.Errorf("%w: randomSpawnMargin must be >= 0, got %v", ErrInvalidConfig, cfg.RandomSpawnMargin)
	}

	// 阶段边界必须递增且落在回合时长之内
	early, mid := cfg.Phases.Early, cfg.Phases.Mid
	if early.UntilSeconds <= 0 || mid.UntilSeconds <= early.UntilSeconds || mid.UntilSeconds >= cfg.DurationSeconds {
		return fmt.Errorf("%w: phase boundaries must satisfy 0 < early(%v) < mid(%v) < duration(%v)",
			ErrInvalidConfig, early.UntilSeconds, mid.UntilSeconds, cfg.DurationSeconds)
	}

	phases := map[string]PhaseConfig{
		"early": early,
		"mid":   mid,
		"end":   cfg.Phases.End.PhaseConfig,
	}
	for name, p := range phases {
		if p.SpawnDelayMs <= 0 {
			return fmt.Errorf("%w: phases.%s.spawnDelayMs must be > 0, got %d", ErrInvalidConfig, name, p.SpawnDelayMs)
		}
		if p.MinLifetimeMs <= 0 || p.MaxLifetimeMs < p.MinLifetimeMs {
			return fmt.Errorf("%w: phases.%s lifetime range [%d, %d] is invalid",
				ErrInvalidConfig, name, p.MinLifetimeMs, p.MaxLifetimeMs)
		}
		if p.PeriodicCount < 1 || p.BurstCount < 1 {
			return fmt.Errorf("%w: phases.%s counts must be >= 1", ErrInvalidConfig, name)
		}
	}

	end := cfg.Phases.End
	if end.SkipProbability < 0 || end.SkipProbability > 1 {
		return fmt.Errorf("%w: phases.end.skipProbability must be in [0, 1], got %v", ErrInvalidConfig, end.SkipProbability)
	}
	if end.ExtraDelayMs < 0 {
		return fmt.Errorf("%w: phases.end.extraDelayMs must be >= 0, got %d", ErrInvalidConfig, end.ExtraDelayMs)
	}
	if end.MinLifetimeShrink < 0 || end.MinLifetimeShrink >= 1 || end.MaxLifetimeShrink < 0 || end.MaxLifetimeShrink >= 1 {
		return fmt.Errorf("%w: phases.end lifetime shrink factors must be in [0, 1)", ErrInvalidConfig)
	}

	lc := cfg.Lifecycle
	if lc.EaseInFraction <= 0 || lc.EaseInFraction > 0.5 || lc.EaseOutFraction <= 0 || lc.EaseOutFraction > 0.5 {
		return fmt.Errorf("%w: lifecycle ease fractions must be in (0, 0.5]", ErrInvalidConfig)
	}
	if lc.FadeStep <= 0 || lc.FadeStep > 1 {
		return fmt.Errorf("%w: lifecycle.fadeStep must be in (0, 1], got %v", ErrInvalidConfig, lc.FadeStep)
	}
	if lc.HitScaleBoost < 1 {
		return fmt.Errorf("%w: lifecycle.hitScaleBoost must be >= 1, got %v", ErrInvalidConfig, lc.HitScaleBoost)
	}

	if cfg.Swim.MinSpeed < 0 || cfg.Swim.MaxSpeed < cfg.Swim.MinSpeed {
		return fmt.Errorf("%w: swim speed range [%v, %v] is invalid", ErrInvalidConfig, cfg.Swim.MinSpeed, cfg.Swim.MaxSpeed)
	}

	if cfg.Burst.MinDistance < 0 || cfg.Burst.MaxDistance < cfg.Burst.MinDistance {
		return fmt.Errorf("%w: burst distance range [%v, %v] is invalid",
			ErrInvalidConfig, cfg.Burst.MinDistance, cfg.Burst.MaxDistance)
	}
	if cfg.Burst.DelayMs < 0 {
		return fmt.Errorf("%w: burst.delayMs must be >= 0, got %d", ErrInvalidConfig, cfg.Burst.DelayMs)
	}

	if cfg.Leaderboard.TimeoutSeconds <= 0 {
		return fmt.Errorf("%w: leaderboard.timeoutSeconds must be > 0", ErrInvalidConfig)
	}

	return nil
}
