package showing

import (
	"strings"
	"time"
)

// ParseShowtime parses a date string (YYYY-MM-DD) and a time string into a
// time.Time. Returns time.Time{} (zero value) if parsing fails.
// Supported time formats: "14:30", "2:30 PM", "14.30", "1430"
func ParseShowtime(dateStr, timeStr string) time.Time {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}
	}

	timeStr = strings.ToUpper(strings.TrimSpace(timeStr))
	if timeStr == "" {
		return time.Time{}
	}

	// 12-hour format with AM/PM
	if strings.Contains(timeStr, "AM") || strings.Contains(timeStr, "PM") {
		t, err := time.Parse("3:04 PM", timeStr)
		if err != nil {
			return time.Time{}
		}
		return combine(day, t)
	}

	// "14:30" format
	t, err := time.Parse("15:04", timeStr)
	if err == nil {
		return combine(day, t)
	}

	// "14.30" format
	t, err = time.Parse("15.04", timeStr)
	if err == nil {
		return combine(day, t)
	}

	// "1430" format
	t, err = time.Parse("1504", timeStr)
	if err == nil {
		return combine(day, t)
	}

	return time.Time{}
}

// combine merges a date-only value and a time-only value
func combine(day, clock time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// NormalizeTime normalizes scraped time text to HH:MM.
// "1430" becomes "14:30" and "11.15" becomes "11:15"; already-normal
// values are returned unchanged.
func NormalizeTime(timeStr string) string {
	timeStr = strings.TrimSpace(timeStr)

	if strings.Contains(timeStr, ":") {
		return timeStr
	}
	if strings.Contains(timeStr, ".") {
		return strings.Replace(timeStr, ".", ":", 1)
	}
	if len(timeStr) == 4 && isDigits(timeStr) {
		return timeStr[:2] + ":" + timeStr[2:]
	}
	return timeStr
}

// ParseGuideDate converts a guide date key (YYYYMMDD) to YYYY-MM-DD.
// Returns today's date if the key is malformed.
func ParseGuideDate(key string) string {
	if len(key) == 8 && isDigits(key) {
		return key[:4] + "-" + key[4:6] + "-" + key[6:8]
	}
	return time.Now().Format("2006-01-02")
}

// ParseRuntime parses runtime text like "2h 15m", "135 min" or "135" into a
// duration. Returns 0 if the text cannot be parsed.
func ParseRuntime(runtime string) time.Duration {
	runtime = strings.ToLower(strings.TrimSpace(runtime))
	if runtime == "" {
		return 0
	}

	// "2h 15m" style parses directly once spaces are removed
	if strings.Contains(runtime, "h") || strings.Contains(runtime, "m") {
		d, err := time.ParseDuration(strings.ReplaceAll(strings.TrimSuffix(runtime, "in"), " ", ""))
		if err == nil {
			return d
		}
	}

	// "135 min" or bare minutes
	fields := strings.Fields(runtime)
	if len(fields) > 0 && isDigits(fields[0]) {
		d, err := time.ParseDuration(fields[0] + "m")
		if err == nil {
			return d
		}
	}

	return 0
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
