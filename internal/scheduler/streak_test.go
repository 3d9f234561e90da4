package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayAt(hour, minute, second int) time.Time {
	return time.Date(2025, time.June, 10, hour, minute, second, 0, time.UTC)
}

func TestStreakReminderDelay(t *testing.T) {
	cases := []struct {
		name  string
		now   time.Time
		daily bool
		want  time.Duration
	}{
		{"ad-hoc fires immediately", dayAt(9, 0, 0), false, time.Second},
		{"before evening waits until 18:00", dayAt(17, 0, 0), true, time.Hour},
		{"morning waits until 18:00", dayAt(8, 30, 0), true, 9*time.Hour + 30*time.Minute},
		{"evening nags every half hour", dayAt(20, 0, 0), true, 30 * time.Minute},
		{"last 45 minutes fires before midnight", dayAt(23, 20, 0), true, 1950 * time.Second},
		{"under 15 minutes to midnight fires now", dayAt(23, 50, 0), true, time.Second},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, streakReminderDelay(tc.now, tc.daily))
		})
	}
}

func TestScheduleStreakReminderNoOpWhenSafe(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	// already extended today
	s.ScheduleStreakReminder(context.Background(), 5, dayAt(7, 0, 0), dayAt(17, 0, 0), true)
	assert.Equal(t, 0, center.size())

	// no streak to protect
	s.ScheduleStreakReminder(context.Background(), 0, dayAt(7, 0, 0).AddDate(0, 0, -1), dayAt(17, 0, 0), true)
	assert.Equal(t, 0, center.size())
}

func TestScheduleStreakReminderRegistersSingleSlot(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	yesterday := dayAt(21, 0, 0).AddDate(0, 0, -1)

	s.ScheduleStreakReminder(context.Background(), 5, yesterday, dayAt(17, 0, 0), true)
	s.ScheduleStreakReminder(context.Background(), 5, yesterday, dayAt(17, 30, 0), true)

	require.Equal(t, 1, center.size())
	req, ok := center.get("streak")
	require.True(t, ok)
	assert.Equal(t, dayAt(18, 0, 0), req.Trigger)
}

func TestScheduleStreakReminderBody(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	yesterday := dayAt(21, 0, 0).AddDate(0, 0, -1)
	s.ScheduleStreakReminder(context.Background(), 5, yesterday, dayAt(17, 0, 0), true)

	req, ok := center.get("streak")
	require.True(t, ok)
	// fires at 18:00 with 6 hours of the day left
	assert.Equal(t, "You have 6 hours left today to keep your 5 day streak going.", req.Body)
	assert.Equal(t, "Don't lose your streak!", req.Title)
}

func TestCancelStreakReminder(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	yesterday := dayAt(21, 0, 0).AddDate(0, 0, -1)
	s.ScheduleStreakReminder(context.Background(), 3, yesterday, dayAt(17, 0, 0), true)
	require.Equal(t, 1, center.size())

	s.CancelStreakReminder(context.Background())
	assert.Equal(t, 0, center.size())
}

func TestTimeLeftPhrase(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Hour, "3 hours"},
		{time.Hour, "1 hour"},
		{90 * time.Minute, "1 hour"},
		{26 * time.Minute, "26 minutes"},
		{time.Minute, "1 minute"},
		{40 * time.Second, "40 seconds"},
		{-5 * time.Second, "0 seconds"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, timeLeftPhrase(tc.d), "duration %s", tc.d)
	}
}
