package systems

import (
	"math"
	"time"

	"github.com/decker502/fishtap/pkg/config"
)

// DifficultyPhase 难度阶段
type DifficultyPhase int

const (
	PhaseEarly DifficultyPhase = iota // 开局：鱼多、寿命长
	PhaseMid                          // 中段：常规难度
	PhaseEnd                          // 末段：鱼少、寿命极短
)

// String 返回阶段名
func (p DifficultyPhase) String() string {
	switch p {
	case PhaseEarly:
		return "early"
	case PhaseMid:
		return "mid"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// DifficultyParams 某一时刻的难度参数
type DifficultyParams struct {
	Phase         DifficultyPhase
	SpawnDelay    time.Duration // 周期生成间隔
	MinLifetime   time.Duration // 新鱼寿命下限
	MaxLifetime   time.Duration // 新鱼寿命上限
	PeriodicCount int           // 每次周期生成数量
	BurstCount    int           // 命中后奖励生成数量
	SkipChance    float64       // 到点后仍跳过的概率，仅末段非零
}

// DifficultyCurve 难度曲线
// 纯函数：输入已流逝秒数，输出该时刻的参数；不保存任何状态，调用方每次重新查询
type DifficultyCurve struct {
	cfg *config.RoundConfig
}

// NewDifficultyCurve 创建难度曲线
func NewDifficultyCurve(cfg *config.RoundConfig) *DifficultyCurve {
	return &DifficultyCurve{cfg: cfg}
}

// At 计算 elapsedSeconds 时刻的难度参数
// 阶段边界左闭右开：elapsed == early.until 属于 mid，elapsed == mid.until 属于 end
func (c *DifficultyCurve) At(elapsedSeconds float64) DifficultyParams {
	phases := c.cfg.Phases

	if elapsedSeconds < phases.Early.UntilSeconds {
		return fromPhase(PhaseEarly, phases.Early)
	}
	if elapsedSeconds < phases.Mid.UntilSeconds {
		return fromPhase(PhaseMid, phases.Mid)
	}

	// 末段：二次方稀缺因子，0 → 1 覆盖最后一段时间
	end := phases.End
	scarcity := c.ScarcityFactor(elapsedSeconds)

	params := fromPhase(PhaseEnd, end.PhaseConfig)
	params.SpawnDelay = ms(float64(end.SpawnDelayMs) + scarcity*float64(end.ExtraDelayMs))
	params.MinLifetime = ms(float64(end.MinLifetimeMs) * (1 - scarcity*end.MinLifetimeShrink))
	params.MaxLifetime = ms(float64(end.MaxLifetimeMs) * (1 - scarcity*end.MaxLifetimeShrink))
	params.SkipChance = end.SkipProbability
	return params
}

// ScarcityFactor 末段进度的平方，末段之前为 0，回合结束后保持 1
func (c *DifficultyCurve) ScarcityFactor(elapsedSeconds float64) float64 {
	start := c.cfg.Phases.Mid.UntilSeconds
	span := c.cfg.DurationSeconds - start
	if span <= 0 || elapsedSeconds <= start {
		return 0
	}
	progress := math.Min(1, (elapsedSeconds-start)/span)
	return progress * progress
}

func fromPhase(phase DifficultyPhase, p config.PhaseConfig) DifficultyParams {
	return DifficultyParams{
		Phase:         phase,
		SpawnDelay:    time.Duration(p.SpawnDelayMs) * time.Millisecond,
		MinLifetime:   time.Duration(p.MinLifetimeMs) * time.Millisecond,
		MaxLifetime:   time.Duration(p.MaxLifetimeMs) * time.Millisecond,
		PeriodicCount: p.PeriodicCount,
		BurstCount:    p.BurstCount,
	}
}

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}
