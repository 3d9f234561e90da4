package prayertimes

import (
	"strconv"
	"time"
)

// Skipped records a feed entry that could not be resolved and why, so
// callers can see what was dropped instead of losing it silently.
type Skipped struct {
	Label  string `json:"label"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

// Resolve turns raw "HMM"/"HHMM" feed strings into instants on now's
// calendar day, keyed by display name. The last two characters are the
// minutes, the rest is the hour; afternoon labels get the +12
// correction from the label table. Malformed or unknown entries are
// excluded from the output and reported in the skipped list.
//
// Resolve is pure: it has no side effects and reads no ambient clock.
func Resolve(raw map[string]string, now time.Time) (map[string]time.Time, []Skipped) {
	times := make(map[string]time.Time, len(raw))
	var skipped []Skipped

	y, m, d := now.Date()

	for feed, value := range raw {
		label, ok := Lookup(feed)
		if !ok {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "unknown label"})
			continue
		}
		if len(value) < 3 {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "too short"})
			continue
		}

		hour, err := strconv.Atoi(value[:len(value)-2])
		if err != nil {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "bad hour"})
			continue
		}
		minute, err := strconv.Atoi(value[len(value)-2:])
		if err != nil {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "bad minute"})
			continue
		}

		// the feed is a 12-hour clock; validate before the correction so
		// a negative hour cannot shift into a plausible morning time
		if hour < 0 || hour > 12 || minute < 0 || minute > 59 {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "out of range"})
			continue
		}

		if label.NeedsCorrection(hour) {
			hour += 12
		}
		// hour 12 on an always-shifting label lands on 24
		if hour > 23 {
			skipped = append(skipped, Skipped{Label: feed, Raw: value, Reason: "out of range"})
			continue
		}

		times[label.Display] = time.Date(y, m, d, hour, minute, 0, 0, now.Location())
	}

	return times, skipped
}
