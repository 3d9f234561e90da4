package model

import "time"

// Event is a community calendar entry parsed from the ICS feed.
// Optional VEVENT fields stay zero-valued when the feed omits them.
type Event struct {
	UID         string    `json:"uid"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	URL         string    `json:"url"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}
