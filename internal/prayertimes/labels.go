package prayertimes

// Label describes one entry of the feed vocabulary: its display name,
// the 12-hour disambiguation rule, and the payload decorations keyed on
// it. This is the single table consumed by both the resolver and the
// notification payload builder.
type Label struct {
	Feed      string
	Display   string
	Afternoon bool
	Salah     bool // canonical prayer: title gets "Salah", sound is adhan
	Icon      string
}

// The feed reports some times on a 12-hour clock with no AM/PM marker,
// so afternoon labels need a hardcoded +12 correction.
var labels = []Label{
	{Feed: "Dawn", Display: "Fajr", Salah: true, Icon: "🕌"},
	{Feed: "Sunrise", Display: "Sunrise", Icon: "☀️"},
	{Feed: "Noon", Display: "Zuhr", Salah: true, Icon: "🕌"},
	{Feed: "Sunset", Display: "Sunset", Afternoon: true, Icon: "🌙"},
	{Feed: "Maghrib", Display: "Maghrib", Afternoon: true, Salah: true, Icon: "🕌"},
	{Feed: "Midnight", Display: "Midnight", Afternoon: true, Icon: "🌙"},
}

// NeedsCorrection reports whether a raw hour for this label should be
// shifted by 12. Zuhr is reported either just before noon (11:xx, no
// shift), at noon (12:xx, already unambiguous) or early afternoon
// (1:xx, shift); the other afternoon labels always shift.
func (l Label) NeedsCorrection(hour int) bool {
	if l.Feed == "Noon" {
		return hour != 11 && hour != 12
	}
	return l.Afternoon
}

// Lookup returns the Label for a feed name.
func Lookup(feed string) (Label, bool) {
	for _, l := range labels {
		if l.Feed == feed {
			return l, true
		}
	}
	return Label{}, false
}

// ByDisplay returns the Label for a display name.
func ByDisplay(display string) (Label, bool) {
	for _, l := range labels {
		if l.Display == display {
			return l, true
		}
	}
	return Label{}, false
}

// DisplayNames returns the full identifier universe for prayer
// notifications, in feed order. The scheduler removes every one of
// these each cycle so stale requests for disabled prayers cannot leak.
func DisplayNames() []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.Display)
	}
	return out
}

// Title builds the notification title for a prayer.
func (l Label) Title() string {
	if l.Salah {
		return l.Display + " Salah"
	}
	return l.Display
}
