package models

import (
	"fmt"
	"math"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders a byte count using 1024-based units with two decimals
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}

	value := float64(bytes)
	unit := 0
	for value >= 1024 && unit < len(sizeUnits)-1 {
		value /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f %s", value, sizeUnits[unit])
}

// FormatDuration renders seconds as m:ss
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return UnknownValue
	}

	minutes := int(seconds) / 60
	remaining := int(math.Floor(math.Mod(seconds, 60)))

	return fmt.Sprintf("%d:%02d", minutes, remaining)
}
