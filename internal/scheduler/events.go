package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/notify"
)

const leadMinutesKey = "lead_minutes"

// Reminder offsets a user can pick for an event, keyed by the negative
// lead in minutes, with the phrase appended to the notification title.
var leadPhrases = map[int]string{
	0:     "now",
	-5:    "in 5 minutes",
	-10:   "in 10 minutes",
	-15:   "in 15 minutes",
	-30:   "in 30 minutes",
	-60:   "in 1 hour",
	-120:  "in 2 hours",
	-1440: "tomorrow",
}

// ScheduleEventNotification registers a single reminder for a calendar
// event, firing leadMinutes before its start. Any pending request for
// the event is cancelled first. A nil lead means "turn the reminder
// off". The event must carry a start time, summary and location, and
// the reminder instant must still be in the future; otherwise nothing
// is registered.
//
// The returned bool is the new notifying state for the event.
func (s *Scheduler) ScheduleEventNotification(ctx context.Context, ev model.Event, leadMinutes *int) bool {
	if err := s.center.Remove(ctx, ev.UID); err != nil {
		log.Error().Err(err).Str("uid", ev.UID).Msg("could not cancel event notification")
		return false
	}

	if leadMinutes == nil {
		if err := s.store.ClearEventLead(ev.UID); err != nil {
			log.Error().Err(err).Str("uid", ev.UID).Msg("could not clear event lead")
		}
		return false
	}

	if ev.Start.IsZero() || ev.Summary == "" || ev.Location == "" {
		log.Warn().Str("uid", ev.UID).Msg("event missing start, summary or location")
		return false
	}

	lead := *leadMinutes
	trigger := ev.Start.Add(-time.Duration(lead) * time.Minute)
	if !trigger.After(s.clock.Now()) {
		log.Warn().Str("uid", ev.UID).Time("trigger", trigger).Msg("event reminder time already passed")
		return false
	}

	title := ev.Summary
	if phrase, ok := leadPhrases[-lead]; ok {
		title = fmt.Sprintf("%s %s", ev.Summary, phrase)
	}

	req := notify.Request{
		ID:      ev.UID,
		Trigger: trigger,
		Title:   title,
		Body:    fmt.Sprintf("📍 %s", ev.Location),
		Data: map[string]string{
			leadMinutesKey: strconv.Itoa(lead),
		},
	}

	if err := s.center.Add(ctx, req); err != nil {
		log.Error().Err(err).Str("uid", ev.UID).Msg("could not register event notification")
		return false
	}

	if err := s.store.SetEventLead(ev.UID, lead); err != nil {
		log.Error().Err(err).Str("uid", ev.UID).Msg("could not record event lead")
	}
	return true
}

// IsNotifying reports whether a reminder is pending for the event and,
// if so, the lead minutes it was scheduled with.
func (s *Scheduler) IsNotifying(ctx context.Context, eventID string) (bool, *int) {
	pending, err := s.center.Pending(ctx)
	if err != nil {
		log.Error().Err(err).Str("uid", eventID).Msg("could not query pending notifications")
		return false, nil
	}

	for _, req := range pending {
		if req.ID != eventID {
			continue
		}
		if raw, ok := req.Data[leadMinutesKey]; ok {
			if lead, err := strconv.Atoi(raw); err == nil {
				return true, &lead
			}
		}
		return true, nil
	}
	return false, nil
}
