package scenes

import (
	"time"

	"github.com/decker502/fishtap/pkg/config"
	"github.com/decker502/fishtap/pkg/game"
	"github.com/decker502/fishtap/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// toastSlideSeconds 提示条滑入时长
const toastSlideSeconds = 0.25

// DrawToast 在画布底部绘制当前提示
// 每个场景共用，由 App 在场景绘制之后调用
func DrawToast(screen *ebiten.Image, gs *game.GameState, now time.Time) {
	toast, ok := gs.CurrentToast(now)
	if !ok {
		return
	}

	bg := config.ToastSuccessBG
	if toast.Level == game.ToastWarning {
		bg = config.ToastWarningBG
	}

	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())
	textW, _ := text.Measure(toast.Message, uiFace, uiLineHeight)
	panelW := textW + 32
	panelH := uiLineHeight + 20

	// 显示的前一小段时间从下方滑入
	shown := config.ToastDurationSeconds - toast.ExpiresAt.Sub(now).Seconds()
	slide := utils.EaseOutQuad(utils.Clamp01(shown / toastSlideSeconds))
	y := utils.Lerp(h, h-panelH-16, slide)

	drawPanel(screen, (w-panelW)/2, y, panelW, panelH, withAlpha(bg, 1), nil)
	drawText(screen, toast.Message, w/2, y+10, config.TextColor, text.AlignCenter)
}
