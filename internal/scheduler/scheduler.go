// Package scheduler computes future trigger instants for prayer,
// event and streak notifications and keeps the notification center's
// pending set in sync with user preferences: at most one pending
// request per identifier, refreshed on every pass.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/notify"
	"github.com/masjidtech/minaret/internal/prayertimes"
)

// TimesSource produces today's raw prayer times and the astronomical
// fallback for sun events.
type TimesSource interface {
	FetchTimes(ctx context.Context) (map[string]string, error)
	FillSunTimes(times map[string]time.Time, now time.Time)
}

// Store is the slice of the persistence layer the scheduler reads
// preferences from and records event lead choices into.
type Store interface {
	ListPrayerToggles() (map[string]bool, error)
	GetStreak() (model.Streak, error)
	SetEventLead(uid string, leadMinutes int) error
	ClearEventLead(uid string) error
}

type Scheduler struct {
	center notify.Center
	clock  clock.Clock
	times  TimesSource
	store  Store

	mu       sync.RWMutex
	adhanURL string
}

func New(center notify.Center, clk clock.Clock, times TimesSource, store Store, adhanURL string) *Scheduler {
	return &Scheduler{
		center:   center,
		clock:    clk,
		times:    times,
		store:    store,
		adhanURL: adhanURL,
	}
}

// AdhanSound returns the sound asset URL used for canonical prayers.
func (s *Scheduler) AdhanSound() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adhanURL
}

// SetAdhanSound swaps the adhan asset, e.g. after an admin upload.
// Already-pending requests keep the sound they were registered with.
func (s *Scheduler) SetAdhanSound(url string) {
	s.mu.Lock()
	s.adhanURL = url
	s.mu.Unlock()
}

// SchedulePrayerNotifications registers one request per enabled prayer
// and removes everything else in the label universe, so a toggle
// flipped off since the last pass loses its pending request. Labels
// absent from enabled default to off. Instants already in the past are
// skipped for this cycle; the next pass picks up tomorrow's times.
//
// Registration is best-effort: a failed add is logged and does not
// block the remaining prayers. The periodic passes self-heal misses.
func (s *Scheduler) SchedulePrayerNotifications(ctx context.Context, enabled map[string]bool, times map[string]time.Time) {
	if err := s.center.Remove(ctx, prayertimes.DisplayNames()...); err != nil {
		log.Error().Err(err).Msg("could not clear pending prayer notifications")
		return
	}

	now := s.clock.Now()

	for display, at := range times {
		if !enabled[display] {
			continue
		}
		label, ok := prayertimes.ByDisplay(display)
		if !ok {
			continue
		}
		if !at.After(now) {
			log.Debug().Str("prayer", display).Time("at", at).Msg("prayer time already passed, skipping")
			continue
		}

		req := notify.Request{
			ID:      display,
			Trigger: at,
			Title:   label.Title(),
			Body:    fmt.Sprintf("%s %s at %s", label.Icon, display, at.Format("3:04 PM")),
		}
		if label.Salah {
			req.Sound = s.AdhanSound()
		}

		if err := s.center.Add(ctx, req); err != nil {
			log.Error().Err(err).Str("prayer", display).Msg("could not register prayer notification")
			continue
		}
	}
}

// RunDailyPass is the periodic entry point (cron tick, toggle change):
// it re-fetches the feed, re-resolves today's times and re-registers
// prayer and streak notifications. A feed failure skips the whole
// cycle; the next tick retries.
func (s *Scheduler) RunDailyPass(ctx context.Context) {
	raw, err := s.times.FetchTimes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("prayer time feed unavailable, skipping scheduling cycle")
		return
	}

	now := s.clock.Now()
	times, skipped := prayertimes.Resolve(raw, now)
	for _, sk := range skipped {
		log.Warn().Str("label", sk.Label).Str("raw", sk.Raw).Str("reason", sk.Reason).Msg("prayer time skipped")
	}
	s.times.FillSunTimes(times, now)

	enabled, err := s.store.ListPrayerToggles()
	if err != nil {
		log.Error().Err(err).Msg("could not load prayer toggles, skipping scheduling cycle")
		return
	}

	s.SchedulePrayerNotifications(ctx, enabled, times)

	streak, err := s.store.GetStreak()
	if err != nil {
		log.Error().Err(err).Msg("could not load streak state")
		return
	}
	s.ScheduleStreakReminder(ctx, streak.Count, streak.LastRead, now, true)
}
