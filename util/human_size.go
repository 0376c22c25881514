package util

import "fmt"

// HumanSize renders a byte count as megabytes with two decimal places,
// matching the format stored in the photo metadata sheet.
func HumanSize(bytes int64) string {
	return fmt.Sprintf("%.2fMB", float64(bytes)/1024/1024)
}
