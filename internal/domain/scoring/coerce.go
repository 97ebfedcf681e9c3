// Package scoring turns raw submitted values into ratings, averages and
// leaderboard scores.
package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel coercion errors.
var (
	ErrNotInteger = errors.New("value is not an integer")
	ErrNotNumber  = errors.New("value is not a number")
)

// ToInt coerces a decoded JSON value to an integer rating.
//
// Integers pass through, fractional numbers truncate toward zero, booleans
// map to 1/0, and strings must hold a decimal integer (surrounding
// whitespace, a sign and single underscores between digits are allowed).
// Everything else, including "", "3.5" and null, fails.
func ToInt(v any) (int64, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotInteger, x.String())
		}
		return truncate(f, ErrNotInteger)
	case float64:
		return truncate(x, ErrNotInteger)
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case string:
		return parseIntString(x)
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotInteger, v)
	}
}

// ToScore coerces a decoded JSON value to a leaderboard score by parsing it
// as a float first and truncating the result: "42.9" yields 42.
func ToScore(v any) (int64, error) {
	var f float64
	switch x := v.(type) {
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		parsed, err := parseFloatString(x.String())
		if err != nil {
			return 0, err
		}
		f = parsed
	case float64:
		f = x
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case string:
		parsed, err := parseFloatString(x)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumber, v)
	}
	return truncate(f, ErrNotNumber)
}

func truncate(f float64, kind error) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", kind, f)
	}
	t := math.Trunc(f)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if t >= float64(math.MaxInt64) || t < float64(math.MinInt64) {
		return 0, fmt.Errorf("%w: %v out of range", kind, f)
	}
	return int64(t), nil
}

func parseIntString(s string) (int64, error) {
	t := strings.TrimSpace(s)
	digits := t
	if strings.HasPrefix(digits, "+") || strings.HasPrefix(digits, "-") {
		digits = digits[1:]
	}
	if !validDigitGroups(digits) {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(t, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotInteger, s)
	}
	return n, nil
}

// validDigitGroups reports whether s is non-empty ASCII digits where
// underscores only appear singly between digits.
func validDigitGroups(s string) bool {
	if s == "" {
		return false
	}
	prevDigit := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			prevDigit = true
		case c == '_' && prevDigit && i+1 < len(s):
			prevDigit = false
		default:
			return false
		}
	}
	return prevDigit
}

func parseFloatString(s string) (float64, error) {
	t := strings.TrimSpace(s)
	if t == "" || strings.ContainsAny(t, "xX") || !underscoresBetweenDigits(t) {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(t, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumber, s)
	}
	return f, nil
}

// underscoresBetweenDigits reports whether every underscore in s sits
// directly between two ASCII digits, as in "1_000.5".
func underscoresBetweenDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i+1 == len(s) || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
