package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// SourceTag is the logger name the training process writes in every line.
const SourceTag = "pico-train"

const (
	// linePrefix matches "2025-01-02 03:04:05 - pico-train - INFO - ".
	linePrefix = `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - ` + SourceTag + ` - INFO - `

	// lineBreak tolerates logs written with CRLF line endings.
	lineBreak = `\r?\n`

	intClass   = `\d+`
	floatClass = `[\d.eE+-]+`
)

// blockPattern joins lines of a multi-line block, each carrying the log line prefix.
func blockPattern(lines ...string) *regexp.Regexp {
	pattern := ""
	for i, line := range lines {
		if i > 0 {
			pattern += lineBreak
		}
		pattern += linePrefix + line
	}
	return regexp.MustCompile(pattern)
}

// capture wraps a character class in a capturing group.
func capture(class string) string {
	return fmt.Sprintf("(%s)", class)
}

// parseFinite parses s as a finite float64.
// Overflowing values and textual infinities or NaNs are rejected.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// parseCount parses s as a non-negative int.
func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
