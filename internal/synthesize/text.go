package synthesize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const genericTitle = "Event"

// Leading filler phrases stripped before title extraction. Order matters:
// longer phrases first so "i need to" wins over "i need".
var fillerPrefixes = []string{
	"we will need to", "we will", "we'll", "we are going to", "we're going to",
	"i need to", "i have to", "i want to", "i will", "i'll", "i'm going to",
	"the team will", "the team needs to",
	"don't forget to", "remember to", "reminder to", "reminder:",
	"please", "need to", "have to", "going to",
}

var attendRe = regexp.MustCompile(`(?i)\b(?:attend|participate in|join)\s+(.+?\s+at\s+.+?)(?:[.,;]|$)`)

// extractTitle applies the title heuristics in priority order.
func extractTitle(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return genericTitle
	}

	// "attend/participate in X at Y" collapses to "X at Y"
	if m := attendRe.FindStringSubmatch(trimmed); m != nil {
		return titleCase(strings.TrimSpace(m[1]))
	}

	lower := strings.ToLower(trimmed)
	for _, prefix := range fillerPrefixes {
		if strings.HasPrefix(lower, prefix+" ") {
			trimmed = strings.TrimSpace(trimmed[len(prefix):])
			lower = strings.ToLower(trimmed)
		}
	}

	// First clause of whatever is left
	if idx := strings.IndexAny(trimmed, ".,;\n"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return genericTitle
	}
	if len(trimmed) > 60 {
		trimmed = strings.TrimSpace(trimmed[:60])
	}
	return titleCase(trimmed)
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

// Day-part anchors mapped onto start hours, checked in this order so the
// result is stable when several appear in one text.
var dayParts = []struct {
	word string
	hour int
}{
	{"morning", 9},
	{"lunch", 12},
	{"noon", 12},
	{"afternoon", 13},
	{"evening", 18},
	{"tonight", 18},
}

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

var clockRe = regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`)
var clock24Re = regexp.MustCompile(`\b(?:at\s+)(\d{1,2}):(\d{2})\b`)

// extractStart scans for time phrases in priority order: explicit clock time,
// then day-part words, else the next day at the default hour. The second
// return reports whether an explicit signal was found.
func extractStart(text string, now time.Time) (time.Time, bool) {
	day := resolveDay(text, now)

	if m := clockRe.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if strings.EqualFold(m[3], "pm") && hour < 12 {
			hour += 12
		}
		if strings.EqualFold(m[3], "am") && hour == 12 {
			hour = 0
		}
		return at(day, hour, minute), true
	}
	if m := clock24Re.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return at(day, hour, minute), true
	}

	lower := strings.ToLower(text)
	for _, part := range dayParts {
		if strings.Contains(lower, part.word) {
			return at(day, part.hour, 0), true
		}
	}

	// No time signal at all: next day at the default hour.
	return at(now.AddDate(0, 0, 1), DefaultHour, 0), false
}

// resolveDay picks the date: "today"/"tomorrow", else the nearest upcoming
// matching weekday, else tomorrow.
func resolveDay(text string, now time.Time) time.Time {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "today") || strings.Contains(lower, "tonight") {
		return now
	}
	if strings.Contains(lower, "tomorrow") {
		return now.AddDate(0, 0, 1)
	}
	// First weekday mentioned in the text wins.
	bestIdx := -1
	var bestDay time.Weekday
	for name, wd := range weekdays {
		if idx := strings.Index(lower, name); idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			bestIdx = idx
			bestDay = wd
		}
	}
	if bestIdx >= 0 {
		days := (int(bestDay) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return now.AddDate(0, 0, days)
	}
	return now.AddDate(0, 0, 1)
}

var durationRe = regexp.MustCompile(`(?i)\bfor\s+(\d+(?:\.\d+)?)\s*(hours?|hrs?|minutes?|mins?)\b`)

// extractDuration finds an explicit duration phrase, defaulting to one hour.
func extractDuration(text string) time.Duration {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return time.Hour
	}
	n, _ := strconv.ParseFloat(m[1], 64)
	if strings.HasPrefix(strings.ToLower(m[2]), "m") {
		return time.Duration(n * float64(time.Minute))
	}
	return time.Duration(n * float64(time.Hour))
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
