package model

import "time"

// PrayerToggle is one row of the prayer notification preference table.
// Labels are display names ("Fajr", "Zuhr", ...), not feed names.
type PrayerToggle struct {
	Prayer    string    `db:"prayer" json:"prayer"`
	Active    bool      `db:"active" json:"active"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
