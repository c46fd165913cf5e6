package util

import (
	"fmt"
	"time"
)

// FormatCount renders a non-negative count with thousands separators
func FormatCount(n int) string {
	str := fmt.Sprintf("%d", n)
	if len(str) <= 3 {
		return str
	}

	chars := []rune(str)
	result := []rune{}
	for i := len(chars) - 1; i >= 0; i-- {
		if len(result) > 0 && len(result)%4 == 3 {
			result = append([]rune{','}, result...)
		}
		result = append([]rune{chars[i]}, result...)
	}
	return string(result)
}

// FormatDuration renders a duration at day, hour or minute granularity
func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatDistance renders a distance in meters, switching to km at 1000m
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}
