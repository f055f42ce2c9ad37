// Package sizeutil converts between byte counts and the display size
// labels shown in the dashboard listing ("500 Bytes", "1.00 KB", "2.00 MB").
//
// Entries carry the label, not the byte count, so sorting by size and the
// usage meter parse labels back to bytes. Format and Parse are inverses
// for every label Format can produce.
package sizeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Size units, base 1024.
const (
	KB int64 = 1024
	MB       = KB * 1024
	GB       = MB * 1024
)

// Format renders a byte count as a display label.
// Values below 1 KB render as whole bytes ("500 Bytes"); larger values
// use two decimals ("1.00 KB", "2.50 GB").
func Format(bytes int64) string {
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d Bytes", bytes)
	}
}

// Parse converts a display label back to bytes. It accepts the labels
// Format produces plus the common short forms ("B", "Byte"). An empty
// label parses to 0, which is how folder entries (no size) sort.
func Parse(label string) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, nil
	}

	fields := strings.Fields(label)
	if len(fields) != 2 {
		return 0, fmt.Errorf("malformed size label %q", label)
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("malformed size label %q: %w", label, err)
	}

	var unit float64
	switch strings.ToUpper(fields[1]) {
	case "B", "BYTE", "BYTES":
		unit = 1
	case "KB":
		unit = float64(KB)
	case "MB":
		unit = float64(MB)
	case "GB":
		unit = float64(GB)
	default:
		return 0, fmt.Errorf("unknown size unit %q", fields[1])
	}

	return int64(value * unit), nil
}

// Percent returns used/total as a whole-number percentage, clamped to
// [0,100]. A zero or negative total yields 0.
func Percent(used, total int64) int {
	if total <= 0 || used <= 0 {
		return 0
	}
	pct := int(float64(used) / float64(total) * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}
