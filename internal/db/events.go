package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
)

// GetEventLead returns the lead minutes chosen for an event, or nil
// when no reminder was configured.
func (s *pgStore) GetEventLead(uid string) (*int, error) {
	var lead int
	const q = `SELECT lead_minutes FROM event_leads WHERE event_uid = $1;`
	if err := s.db.Get(&lead, q, uid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		log.Error().Err(err).Str("event_uid", uid).Msg("GetEventLead failed")
		return nil, err
	}
	return &lead, nil
}

func (s *pgStore) SetEventLead(uid string, leadMinutes int) error {
	const q = `
	INSERT INTO event_leads (event_uid, lead_minutes, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (event_uid) DO UPDATE SET lead_minutes = $2, updated_at = now();`
	if _, err := s.db.Exec(q, uid, leadMinutes); err != nil {
		log.Error().Err(err).Str("event_uid", uid).Msg("SetEventLead failed")
		return err
	}
	return nil
}

func (s *pgStore) ClearEventLead(uid string) error {
	if _, err := s.db.Exec(`DELETE FROM event_leads WHERE event_uid = $1;`, uid); err != nil {
		log.Error().Err(err).Str("event_uid", uid).Msg("ClearEventLead failed")
		return err
	}
	return nil
}
