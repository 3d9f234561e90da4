package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/notify"
)

// streakID is the single-slot identifier for the streak reminder.
const streakID = "streak"

// ScheduleStreakReminder registers the one reminder nudging the reader
// before the day ends. No-op when there is no streak to protect or the
// streak was already extended today. Any previously pending reminder is
// replaced.
//
// daily selects the scheduling-pass delay curve; an ad-hoc call
// (daily == false) fires essentially immediately for the manual
// "remind me now" path.
func (s *Scheduler) ScheduleStreakReminder(ctx context.Context, streakCount int, lastRead, now time.Time, daily bool) {
	if streakCount <= 0 || clock.SameDay(lastRead, now) {
		return
	}

	if err := s.center.Remove(ctx, streakID); err != nil {
		log.Error().Err(err).Msg("could not clear streak reminder")
		return
	}

	delay := streakReminderDelay(now, daily)
	fireAt := now.Add(delay)
	left := clock.Midnight(now).Sub(fireAt)

	req := notify.Request{
		ID:      streakID,
		Trigger: fireAt,
		Title:   "Don't lose your streak!",
		Body: fmt.Sprintf("You have %s left today to keep your %d day streak going.",
			timeLeftPhrase(left), streakCount),
	}

	if err := s.center.Add(ctx, req); err != nil {
		log.Error().Err(err).Msg("could not register streak reminder")
	}
}

// CancelStreakReminder drops the pending reminder, typically right
// after the streak was extended for the day.
func (s *Scheduler) CancelStreakReminder(ctx context.Context) {
	if err := s.center.Remove(ctx, streakID); err != nil {
		log.Error().Err(err).Msg("could not cancel streak reminder")
	}
}

// streakReminderDelay picks how long to wait before the reminder fires.
// The daily pass reminds at 18:00, then every half hour; inside the
// last 45 minutes of the day it fires 7.5 minutes before midnight,
// or right away when midnight is less than 15 minutes out.
func streakReminderDelay(now time.Time, daily bool) time.Duration {
	if !daily {
		return time.Second
	}

	if now.Hour() < 18 {
		y, m, d := now.Date()
		evening := time.Date(y, m, d, 18, 0, 0, 0, now.Location())
		return evening.Sub(now)
	}

	timeToEndOfDay := clock.Midnight(now).Sub(now)
	if timeToEndOfDay < 45*time.Minute {
		if timeToEndOfDay < 15*time.Minute {
			return time.Second
		}
		return timeToEndOfDay - 450*time.Second
	}
	return 30 * time.Minute
}

// timeLeftPhrase renders a duration using only its most significant
// unit ("3 hours", "1 minute", "40 seconds").
func timeLeftPhrase(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	switch {
	case d >= time.Hour:
		return plural(int(d.Hours()), "hour")
	case d >= time.Minute:
		return plural(int(d.Minutes()), "minute")
	default:
		return plural(int(d.Seconds()), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
