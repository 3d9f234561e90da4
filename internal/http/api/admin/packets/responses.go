package packets

import "time"

type ProfileResponse struct {
	ID    int     `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

type TogglesResponse struct {
	Toggles map[string]bool `json:"toggles"`
}

type EventNotifyingResponse struct {
	UID         string `json:"uid"`
	Notifying   bool   `json:"notifying"`
	LeadMinutes *int   `json:"lead_minutes"`
}

type StreakResponse struct {
	Count    int       `json:"count"`
	LastRead time.Time `json:"last_read"`
}

type PendingResponse struct {
	ID      string    `json:"id"`
	Trigger time.Time `json:"trigger"`
	Title   string    `json:"title"`
}

type SoundResponse struct {
	URL string `json:"url"`
}
