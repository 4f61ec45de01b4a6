package report

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats counts with thousands separators.
var printer = message.NewPrinter(language.English)

// formatCount formats n with thousands separators, e.g. 12345 -> "12,345".
func formatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// formatFloat formats f in the shortest form that round trips.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
