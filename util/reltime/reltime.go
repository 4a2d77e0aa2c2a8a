// Package reltime formats timestamps as coarse "N units ago" strings.
package reltime

import (
	"fmt"
	"time"
)

const (
	minute = 60
	hour   = 60 * minute
	day    = 24 * hour
)

// Format describes how long before now the time then was.
func Format(then, now time.Time) string {
	return FormatSeconds(then.Unix(), now.Unix())
}

// FormatSeconds works on Unix seconds. Units are floored, never rounded,
// and timestamps in the future read as "just now".
func FormatSeconds(timestamp, now int64) string {
	delta := now - timestamp
	switch {
	case delta >= day:
		return fmt.Sprintf("%d days ago", delta/day)
	case delta >= hour:
		return fmt.Sprintf("%d hours ago", delta/hour)
	case delta >= minute:
		return fmt.Sprintf("%d minutes ago", delta/minute)
	default:
		return "just now"
	}
}
