package utils

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatHumanSize converts a byte length into a base-1024 string such as "512B", "1.5KB" or "1.0MB".
// Bytes carry no decimals; every larger unit carries exactly one.
func FormatHumanSize(bytes int64) string {
	if bytes < 0 {
		return "0" + sizeUnits[0]
	}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d%s", bytes, sizeUnits[unitIndex])
	}
	return fmt.Sprintf("%.1f%s", value, sizeUnits[unitIndex])
}
