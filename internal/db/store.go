// exposes a Store interface that is passed to API calls and the
// scheduler instead of the raw connection.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/masjidtech/minaret/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// prayer notification toggles
	ListPrayerToggles() (map[string]bool, error)
	SetPrayerToggle(prayer string, active bool) error

	// streak state
	GetStreak() (model.Streak, error)
	ExtendStreak(now time.Time) (model.Streak, error)

	// event reminder lead choices
	GetEventLead(uid string) (*int, error)
	SetEventLead(uid string, leadMinutes int) error
	ClearEventLead(uid string) error
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}
