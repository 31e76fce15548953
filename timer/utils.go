package timer

import (
	"fmt"
)

// FormatTime converts a number of seconds into a mm:ss string format.
// Minutes are not capped, so 100 minutes renders as "100:00".
func FormatTime(sec int) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}
