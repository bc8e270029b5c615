package standing

import (
	"fmt"
	"strings"
	"time"
)

// AnchorDate returns the latest occurrence of weekday at or before day.
func AnchorDate(day time.Time, weekday time.Weekday) time.Time {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	back := (int(start.Weekday()) - int(weekday) + 7) % 7
	return start.AddDate(0, 0, -back)
}

func ParseWeekday(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if value == name || value == name[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", raw)
}
