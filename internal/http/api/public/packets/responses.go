package packets

import (
	"time"

	"github.com/masjidtech/minaret/internal/prayertimes"
)

type PrayerTimesResponse struct {
	Date    string                `json:"date"`
	Times   map[string]time.Time  `json:"times"`
	Skipped []prayertimes.Skipped `json:"skipped,omitempty"`
}

type EventResponse struct {
	UID         string     `json:"uid"`
	Summary     string     `json:"summary,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`
	URL         string     `json:"url,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
}
