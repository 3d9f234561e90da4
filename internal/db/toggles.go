package db

import (
	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/model"
)

// ListPrayerToggles returns the prayer -> enabled mapping. Prayers with
// no row default to disabled on the caller's side.
func (s *pgStore) ListPrayerToggles() (map[string]bool, error) {
	var rows []model.PrayerToggle
	const q = `
	SELECT prayer, active, updated_at
	  FROM prayer_notifications
	 ORDER BY prayer;`
	if err := s.db.Select(&rows, q); err != nil {
		log.Error().Err(err).Msg("ListPrayerToggles failed")
		return nil, err
	}

	out := make(map[string]bool, len(rows))
	for _, row := range rows {
		out[row.Prayer] = row.Active
	}
	return out, nil
}

func (s *pgStore) SetPrayerToggle(prayer string, active bool) error {
	const q = `
	INSERT INTO prayer_notifications (prayer, active, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (prayer) DO UPDATE SET active = $2, updated_at = now();`
	if _, err := s.db.Exec(q, prayer, active); err != nil {
		log.Error().Err(err).Str("prayer", prayer).Msg("SetPrayerToggle failed")
		return err
	}
	return nil
}
