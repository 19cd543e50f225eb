package moderation

import (
	"math"
	"strconv"
	"time"
)

var units = map[byte]time.Duration{
	'd': 24 * time.Hour,
	'h': time.Hour,
	'm': time.Minute,
}

// ParseExpiry turns a token such as "7d", "2h" or "30m" into an absolute
// expiry relative to now. Any other input, including negative counts and
// values that overflow, reports false and the caller applies the action
// permanently.
func ParseExpiry(token string, now time.Time) (time.Time, bool) {
	if len(token) < 2 {
		return time.Time{}, false
	}
	unit, ok := units[token[len(token)-1]]
	if !ok {
		return time.Time{}, false
	}
	digits := token[:len(token)-1]
	if digits[0] == '+' || digits[0] == '-' {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 0 {
		return time.Time{}, false
	}
	if n > math.MaxInt64/int64(unit) {
		return time.Time{}, false
	}
	return now.Add(time.Duration(n) * unit), true
}
