package scoring

import (
	"fmt"
	"time"
)

// FormatTimestamp renders t in UTC as YYYY-MM-DDTHH:MM:SS[.ffffff]Z.
// The fractional part is omitted when the microsecond component is zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()
	base := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / int(time.Microsecond); us != 0 {
		return fmt.Sprintf("%s.%06dZ", base, us)
	}
	return base + "Z"
}
