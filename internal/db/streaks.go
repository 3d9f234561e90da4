package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/model"
)

// GetStreak returns the single streak row; a zero Streak when none
// has been recorded yet.
func (s *pgStore) GetStreak() (model.Streak, error) {
	var st model.Streak
	const q = `
	SELECT count, last_read, updated_at
	  FROM streaks
	 WHERE id = 1;`
	if err := s.db.Get(&st, q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Streak{}, nil
		}
		log.Error().Err(err).Msg("GetStreak failed")
		return model.Streak{}, err
	}
	return st, nil
}

// ExtendStreak marks today as read: a read on consecutive days bumps
// the counter, a gap resets it to 1, a second read today is a no-op.
func (s *pgStore) ExtendStreak(now time.Time) (model.Streak, error) {
	current, err := s.GetStreak()
	if err != nil {
		return model.Streak{}, err
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	if current.Count > 0 && current.LastRead.In(now.Location()).Equal(today) {
		return current, nil
	}

	// calendar-day comparison so DST transitions don't break the run
	count := 1
	if current.Count > 0 && clock.SameDay(current.LastRead, today.AddDate(0, 0, -1)) {
		count = current.Count + 1
	}

	const q = `
	INSERT INTO streaks (id, count, last_read, updated_at)
	VALUES (1, $1, $2, now())
	ON CONFLICT (id) DO UPDATE SET count = $1, last_read = $2, updated_at = now();`
	if _, err := s.db.Exec(q, count, today); err != nil {
		log.Error().Err(err).Msg("ExtendStreak failed")
		return model.Streak{}, err
	}

	return model.Streak{Count: count, LastRead: today, UpdatedAt: now}, nil
}
