package economy

import (
	"fmt"
	"math"
)

// FormatMagnitude renders a quantity with a K/M/B/T suffix at powers of a
// thousand, two decimals, or the integer floor below one thousand. Progress
// text and leaderboard rows rely on these exact thresholds.
func FormatMagnitude(n float64) string {
	switch {
	case n >= 1e12:
		return fmt.Sprintf("%.2fT", n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("%.2fB", n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.2fM", n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.2fK", n/1e3)
	default:
		return fmt.Sprintf("%d", int64(math.Floor(n)))
	}
}
