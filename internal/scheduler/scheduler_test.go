package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/notify"
)

type fakeCenter struct {
	mu   sync.Mutex
	reqs map[string]notify.Request
}

func newFakeCenter() *fakeCenter {
	return &fakeCenter{reqs: make(map[string]notify.Request)}
}

func (f *fakeCenter) Pending(ctx context.Context) ([]notify.Request, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notify.Request, 0, len(f.reqs))
	for _, r := range f.reqs {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeCenter) Add(ctx context.Context, req notify.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs[req.ID] = req
	return nil
}

func (f *fakeCenter) Remove(ctx context.Context, ids ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.reqs, id)
	}
	return nil
}

func (f *fakeCenter) get(id string) (notify.Request, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reqs[id]
	return r, ok
}

func (f *fakeCenter) size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

type fakeStore struct {
	toggles map[string]bool
	streak  model.Streak
	leads   map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{toggles: make(map[string]bool), leads: make(map[string]int)}
}

func (f *fakeStore) ListPrayerToggles() (map[string]bool, error) { return f.toggles, nil }
func (f *fakeStore) GetStreak() (model.Streak, error)            { return f.streak, nil }
func (f *fakeStore) SetEventLead(uid string, lead int) error {
	f.leads[uid] = lead
	return nil
}
func (f *fakeStore) ClearEventLead(uid string) error {
	delete(f.leads, uid)
	return nil
}

var noon = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestScheduler(center notify.Center) (*Scheduler, *fakeStore) {
	store := newFakeStore()
	return New(center, clock.Fixed{T: noon}, nil, store, "https://cdn.example.com/adhan.wav"), store
}

func at(hour, minute int) time.Time {
	return time.Date(2025, time.June, 10, hour, minute, 0, 0, time.UTC)
}

func TestSchedulePrayerNotificationsIdempotent(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	enabled := map[string]bool{"Maghrib": true, "Sunset": true}
	times := map[string]time.Time{"Maghrib": at(18, 30), "Sunset": at(19, 55)}

	s.SchedulePrayerNotifications(context.Background(), enabled, times)
	require.Equal(t, 2, center.size())

	s.SchedulePrayerNotifications(context.Background(), enabled, times)
	assert.Equal(t, 2, center.size())

	maghrib, ok := center.get("Maghrib")
	require.True(t, ok)
	assert.Equal(t, at(18, 30), maghrib.Trigger)
}

func TestSchedulePrayerNotificationsRemovesDisabled(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	times := map[string]time.Time{"Maghrib": at(18, 30), "Fajr": at(19, 0)}

	s.SchedulePrayerNotifications(context.Background(), map[string]bool{"Maghrib": true, "Fajr": true}, times)
	require.Equal(t, 2, center.size())

	// only the toggle changed
	s.SchedulePrayerNotifications(context.Background(), map[string]bool{"Maghrib": true, "Fajr": false}, times)
	assert.Equal(t, 1, center.size())
	_, ok := center.get("Fajr")
	assert.False(t, ok)
}

func TestSchedulePrayerNotificationsSkipsPastTimes(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	// Fajr already passed at noon, Maghrib has not
	times := map[string]time.Time{"Fajr": at(5, 30), "Maghrib": at(18, 30)}
	s.SchedulePrayerNotifications(context.Background(), map[string]bool{"Fajr": true, "Maghrib": true}, times)

	_, fajr := center.get("Fajr")
	assert.False(t, fajr)
	_, maghrib := center.get("Maghrib")
	assert.True(t, maghrib)
}

func TestSchedulePrayerNotificationsDefaultsToDisabled(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	// no entry for Sunset in the toggle map
	times := map[string]time.Time{"Sunset": at(19, 55)}
	s.SchedulePrayerNotifications(context.Background(), map[string]bool{}, times)

	assert.Equal(t, 0, center.size())
}

func TestSchedulePrayerNotificationsPayload(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	times := map[string]time.Time{"Maghrib": at(18, 30), "Sunset": at(19, 55)}
	s.SchedulePrayerNotifications(context.Background(), map[string]bool{"Maghrib": true, "Sunset": true}, times)

	maghrib, ok := center.get("Maghrib")
	require.True(t, ok)
	assert.Equal(t, "Maghrib Salah", maghrib.Title)
	assert.Equal(t, "🕌 Maghrib at 6:30 PM", maghrib.Body)
	assert.Equal(t, "https://cdn.example.com/adhan.wav", maghrib.Sound)

	sunset, ok := center.get("Sunset")
	require.True(t, ok)
	assert.Equal(t, "Sunset", sunset.Title)
	assert.Equal(t, "🌙 Sunset at 7:55 PM", sunset.Body)
	assert.Empty(t, sunset.Sound, "sun events use the default sound")
}

func testEvent() model.Event {
	return model.Event{
		UID:      "evt-1",
		Summary:  "Eid Night Programme",
		Location: "Hyderi Islamic Centre",
		Start:    at(14, 0),
	}
}

func TestScheduleEventNotification(t *testing.T) {
	center := newFakeCenter()
	s, store := newTestScheduler(center)

	lead := 10
	ok := s.ScheduleEventNotification(context.Background(), testEvent(), &lead)
	require.True(t, ok)

	notifying, got := s.IsNotifying(context.Background(), "evt-1")
	require.True(t, notifying)
	require.NotNil(t, got)
	assert.Equal(t, 10, *got)

	req, _ := center.get("evt-1")
	assert.Equal(t, at(13, 50), req.Trigger)
	assert.Equal(t, "Eid Night Programme in 10 minutes", req.Title)
	assert.Equal(t, "📍 Hyderi Islamic Centre", req.Body)
	assert.Equal(t, 10, store.leads["evt-1"])
}

func TestScheduleEventNotificationNilLeadTurnsOff(t *testing.T) {
	center := newFakeCenter()
	s, store := newTestScheduler(center)

	lead := 10
	require.True(t, s.ScheduleEventNotification(context.Background(), testEvent(), &lead))

	ok := s.ScheduleEventNotification(context.Background(), testEvent(), nil)
	assert.False(t, ok)

	notifying, got := s.IsNotifying(context.Background(), "evt-1")
	assert.False(t, notifying)
	assert.Nil(t, got)
	_, stored := store.leads["evt-1"]
	assert.False(t, stored)
}

func TestScheduleEventNotificationPastTrigger(t *testing.T) {
	center := newFakeCenter()
	s, store := newTestScheduler(center)

	// start before the pinned noon clock
	past := testEvent()
	past.Start = at(11, 0)
	lead := 10
	assert.False(t, s.ScheduleEventNotification(context.Background(), past, &lead))
	assert.Equal(t, 0, center.size())
	_, stored := store.leads["evt-1"]
	assert.False(t, stored)

	// reminder instant elapsed even though the event itself has not
	soon := testEvent()
	soon.Start = at(12, 5)
	assert.False(t, s.ScheduleEventNotification(context.Background(), soon, &lead))
	assert.Equal(t, 0, center.size())
}

func TestScheduleEventNotificationMissingFields(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)
	lead := 10

	noLocation := testEvent()
	noLocation.Location = ""
	assert.False(t, s.ScheduleEventNotification(context.Background(), noLocation, &lead))

	noStart := testEvent()
	noStart.Start = time.Time{}
	assert.False(t, s.ScheduleEventNotification(context.Background(), noStart, &lead))

	assert.Equal(t, 0, center.size())
}

func TestScheduleEventNotificationUnknownLeadOmitsPhrase(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	lead := 7
	require.True(t, s.ScheduleEventNotification(context.Background(), testEvent(), &lead))

	req, _ := center.get("evt-1")
	assert.Equal(t, "Eid Night Programme", req.Title)
	assert.Equal(t, at(13, 53), req.Trigger)
}

func TestIsNotifyingUnknownEvent(t *testing.T) {
	center := newFakeCenter()
	s, _ := newTestScheduler(center)

	notifying, lead := s.IsNotifying(context.Background(), "nope")
	assert.False(t, notifying)
	assert.Nil(t, lead)
}
