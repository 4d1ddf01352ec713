package gallery

import "fmt"

// MaxDisplayScore is the largest score the 4-digit display can show.
const MaxDisplayScore = 9999

// FormatScore clamps score to [0, MaxDisplayScore] and zero-pads it to 4 digits.
func FormatScore(score int) string {
	return fmt.Sprintf("%04d", min(max(score, 0), MaxDisplayScore))
}
