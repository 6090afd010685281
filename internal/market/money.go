// Package market provides the simulated stock market, the player's
// portfolio and the trading objective.
package market

import "fmt"

// FormatCents renders an amount in minor units as a decimal with two places,
// e.g. 10050 -> "100.50".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
