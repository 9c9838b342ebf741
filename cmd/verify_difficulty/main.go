// verify_difficulty 打印难度曲线，并用一个简单的机器人模拟整局
//
// 用法：
//
//	go run ./cmd/verify_difficulty -seed 42 -reaction 350
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/systems"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "回合配置文件路径")
	seed       = flag.Int64("seed", 1, "随机种子")
	reaction   = flag.Int("reaction", 350, "机器人发现一条鱼到点击它的反应时间(毫秒)")
	step       = flag.Float64("step", 2.5, "曲线表的采样间隔(秒)")
	rounds     = flag.Int("rounds", 5, "模拟的回合数")
)

// 模拟画布
const (
	simWidth  = 800
	simHeight = 600
	frame     = 16 * time.Millisecond
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultRoundConfig()
	if *configPath != "" {
		loaded, err := config.LoadRoundConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	printCurve(cfg, *step)

	fmt.Println()
	fmt.Printf("Bot simulation (reaction %dms, seed %d)\n", *reaction, *seed)
	total := 0
	for i := 0; i < *rounds; i++ {
		score, spawned := simulate(cfg, *seed+int64(i), time.Duration(*reaction)*time.Millisecond)
		total += score
		fmt.Printf("  round %d: score %3d, fish spawned %3d\n", i+1, score, spawned)
	}
	if *rounds > 0 {
		fmt.Printf("  average: %.1f\n", float64(total)/float64(*rounds))
	}
}

func printCurve(cfg *config.RoundConfig, step float64) {
	curve := systems.NewDifficultyCurve(cfg)
	fmt.Println("elapsed  phase  spawnDelay  lifetime           count  burst  skip")
	for t := 0.0; t <= cfg.DurationSeconds; t += step {
		p := curve.At(t)
		fmt.Printf("%6.1fs  %-5s  %8dms  %5dms - %5dms  %5d  %5d  %4.2f\n",
			t, p.Phase, p.SpawnDelay.Milliseconds(),
			p.MinLifetime.Milliseconds(), p.MaxLifetime.Milliseconds(),
			p.PeriodicCount, p.BurstCount, p.SkipChance)
	}
}

// simulate 机器人每帧点击一条已经出现超过反应时间的鱼
func simulate(cfg *config.RoundConfig, seed int64, reaction time.Duration) (score, spawned int) {
	rng := rand.New(rand.NewSource(seed))
	round := game.NewRound(cfg, rng, nil)
	bounds := systems.Bounds{Width: simWidth, Height: simHeight}

	now := time.Unix(0, 0)
	round.Start(now)
	for round.Phase() == game.RoundRunning {
		for _, f := range round.Fish() {
			if f.Hit || now.Sub(f.CreatedAt) < reaction {
				continue
			}
			if _, ok := round.Tap(f.X, f.Y, now); ok {
				break
			}
		}
		spawned += round.Tick(now, bounds).Spawned
		now = now.Add(frame)
	}
	return round.Score(), spawned
}
