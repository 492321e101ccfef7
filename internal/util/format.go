package util

import (
	"fmt"
	"math"
	"time"
)

// FormatFixed formats v with prec decimals, printing -0 as 0.
func FormatFixed(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	s := fmt.Sprintf("%.*f", prec, v)
	if s[0] == '-' && isZero(s[1:]) {
		return s[1:]
	}
	return s
}

// FormatSigned is FormatFixed with an explicit sign on non-zero values.
func FormatSigned(v float64, prec int) string {
	s := FormatFixed(v, prec)
	if s[0] != '-' && s != "—" && !isZero(s) {
		return "+" + s
	}
	return s
}

// FormatMillis formats a short duration as whole milliseconds.
func FormatMillis(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}

func isZero(s string) bool {
	for _, c := range s {
		if c != '0' && c != '.' {
			return false
		}
	}
	return true
}
