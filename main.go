package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/fishtap/pkg/app"
	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"
)

// 远程排行榜的环境变量，命令行参数优先
const (
	envLeaderboardURL = "FISHTAP_SUPABASE_URL"
	envLeaderboardKey = "FISHTAP_SUPABASE_ANON_KEY"
)

var (
	verbose        = flag.Bool("verbose", false, "显示详细调试信息")
	configPath     = flag.String("config", "", "回合配置文件路径(默认使用内置 data/round.yaml)")
	leaderboardURL = flag.String("leaderboard-url", os.Getenv(envLeaderboardURL), "远程排行榜地址")
	leaderboardKey = flag.String("leaderboard-key", os.Getenv(envLeaderboardKey), "远程排行榜匿名密钥")
	seed           = flag.Int64("seed", 0, "随机种子，非零时回合可复现")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	roundConfig, err := loadRoundConfig(*configPath)
	if err != nil {
		log.Fatalf("回合配置加载失败: %v", err)
	}

	// 本地存储不可用时仍可游玩，只是不保存
	storage, err := gdata.Open(gdata.Config{AppName: "fishtap"})
	if err != nil {
		log.Printf("[Main] Warning: local storage unavailable: %v", err)
		storage = nil
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:        *verbose,
		Round:          roundConfig,
		Storage:        storage,
		LeaderboardURL: *leaderboardURL,
		LeaderboardKey: *leaderboardKey,
		Seed:           *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// loadRoundConfig 优先读取命令行指定的文件，否则使用内置配置
func loadRoundConfig(path string) (*config.RoundConfig, error) {
	if path != "" {
		return config.LoadRoundConfig(path)
	}
	data, err := embedded.ReadFile("data/round.yaml")
	if err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	return config.ParseRoundConfig(data)
}
