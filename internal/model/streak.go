package model

import "time"

// Streak tracks consecutive days with a completed Quran reading session.
// LastRead is the start of the day the streak was last extended.
type Streak struct {
	Count     int       `db:"count" json:"count"`
	LastRead  time.Time `db:"last_read" json:"last_read"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
