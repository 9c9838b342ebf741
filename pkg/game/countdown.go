package game

import (
	"math"

	"github.com/decker502/fishtap/pkg/config"
)

// WarningSecond 剩余时间落在提示区间 (0, TimeWarningSeconds] 内时返回当前整秒
// 整秒向上取整，例如剩余 4.2 秒报告 5
func WarningSecond(remaining float64) (int, bool) {
	if remaining <= 0 || remaining > config.TimeWarningSeconds {
		return 0, false
	}
	return int(math.Ceil(remaining)), true
}
