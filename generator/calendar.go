package generator

import "strings"

// calendarHeaderToken marks lines treated as a table header and skipped.
const calendarHeaderToken = "Day"

// ExtractCalendar splits a model reply into calendar rows.
//
// This is a best-effort heuristic over free text, not a parser. Each line
// is split on its first two colons; the first segment becomes the idea and
// the last the caption. Lines without a colon are dropped silently, and
// any line whose trimmed text begins with "Day" is skipped as a header,
// including lines such as "Day 1: Workout tip: Stay hydrated" that would
// otherwise parse. Day numbers count emitted rows, they are never read
// from the text.
func ExtractCalendar(raw string) []CalendarRow {
	rows := []CalendarRow{}
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), calendarHeaderToken) {
			continue
		}
		parts := strings.SplitN(line, ":", 3)
		if len(parts) < 2 {
			continue
		}
		rows = append(rows, CalendarRow{
			Day:     len(rows) + 1,
			Idea:    strings.TrimSpace(parts[0]),
			Caption: strings.TrimSpace(parts[len(parts)-1]),
		})
	}
	return rows
}
