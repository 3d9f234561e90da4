package endpoints

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/notify"
	"github.com/masjidtech/minaret/internal/scheduler"
)

type stubStore struct {
	toggles map[string]bool
	leads   map[string]int
}

func newStubStore() *stubStore {
	return &stubStore{toggles: make(map[string]bool), leads: make(map[string]int)}
}

func (s *stubStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return 1, nil
}
func (s *stubStore) GetUserByEmail(email string) (*model.User, error) { return nil, nil }
func (s *stubStore) GetUserByID(id int) (*model.User, error)          { return nil, nil }

func (s *stubStore) ListPrayerToggles() (map[string]bool, error) { return s.toggles, nil }
func (s *stubStore) SetPrayerToggle(prayer string, active bool) error {
	s.toggles[prayer] = active
	return nil
}

func (s *stubStore) GetStreak() (model.Streak, error)                 { return model.Streak{}, nil }
func (s *stubStore) ExtendStreak(now time.Time) (model.Streak, error) { return model.Streak{}, nil }

func (s *stubStore) GetEventLead(uid string) (*int, error) {
	lead, ok := s.leads[uid]
	if !ok {
		return nil, nil
	}
	return &lead, nil
}
func (s *stubStore) SetEventLead(uid string, leadMinutes int) error {
	s.leads[uid] = leadMinutes
	return nil
}
func (s *stubStore) ClearEventLead(uid string) error {
	delete(s.leads, uid)
	return nil
}

type stubTimes struct{}

func (stubTimes) FetchTimes(ctx context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}
func (stubTimes) FillSunTimes(times map[string]time.Time, now time.Time) {}

type stubEvents struct {
	events []model.Event
}

func (s *stubEvents) Fetch(ctx context.Context) ([]model.Event, error) { return s.events, nil }

// testUser injects a fake authenticated admin so the endpoints can be
// exercised without a real token.
func testUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", &model.User{ID: 1, Email: "admin@example.com"})
	}
}

func setupRouter(t *testing.T) (*gin.Engine, *stubStore, *stubEvents) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newStubStore()
	center := notify.NewMemoryCenter(nil, nil)
	// real wall clock so registered reminders stay pending for the
	// duration of the test
	now := time.Now()
	sched := scheduler.New(center, clock.Fixed{T: now}, stubTimes{}, store, "")
	events := &stubEvents{events: []model.Event{{
		UID:      "evt-1",
		Summary:  "Eid Night Programme",
		Location: "Hyderi Islamic Centre",
		Start:    now.Add(4 * time.Hour),
	}}}

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Middleware: []gin.HandlerFunc{testUser()},
	}, NotificationModule(store, sched, events, center))

	return r, store, events
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPrayerToggles(t *testing.T) {
	r, store, _ := setupRouter(t)
	store.toggles["Maghrib"] = true

	w := doJSON(t, r, http.MethodGet, "/api/admin/notifications/prayers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Toggles map[string]bool `json:"toggles"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Toggles["Maghrib"])
	assert.False(t, resp.Toggles["Fajr"], "unset toggles read as disabled")
	assert.Contains(t, resp.Toggles, "Zuhr")
	assert.Contains(t, resp.Toggles, "Sunrise")
}

func TestSetPrayerToggle(t *testing.T) {
	r, store, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/admin/notifications/prayers",
		gin.H{"prayer": "Maghrib", "active": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.toggles["Maghrib"])
}

func TestSetPrayerToggleUnknownPrayer(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/admin/notifications/prayers",
		gin.H{"prayer": "Asr", "active": true})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleEventRoundTrip(t *testing.T) {
	r, store, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/notifications/events/evt-1",
		gin.H{"lead_minutes": 30})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UID         string `json:"uid"`
		Notifying   bool   `json:"notifying"`
		LeadMinutes *int   `json:"lead_minutes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "evt-1", resp.UID)
	assert.True(t, resp.Notifying)
	require.NotNil(t, resp.LeadMinutes)
	assert.Equal(t, 30, *resp.LeadMinutes)
	assert.Equal(t, 30, store.leads["evt-1"])

	w = doJSON(t, r, http.MethodGet, "/api/admin/notifications/events/evt-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Notifying)

	// null lead turns the reminder off again
	w = doJSON(t, r, http.MethodPost, "/api/admin/notifications/events/evt-1",
		gin.H{"lead_minutes": nil})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Notifying)
	_, kept := store.leads["evt-1"]
	assert.False(t, kept)
}

func TestEventNotifyingReturnsStoredLead(t *testing.T) {
	r, store, _ := setupRouter(t)

	// choice recorded earlier, no pending request anymore
	store.leads["evt-1"] = 15

	w := doJSON(t, r, http.MethodGet, "/api/admin/notifications/events/evt-1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		UID         string `json:"uid"`
		Notifying   bool   `json:"notifying"`
		LeadMinutes *int   `json:"lead_minutes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Notifying)
	require.NotNil(t, resp.LeadMinutes)
	assert.Equal(t, 15, *resp.LeadMinutes)
}

func TestScheduleEventUnknownUID(t *testing.T) {
	r, _, _ := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/admin/notifications/events/nope",
		gin.H{"lead_minutes": 10})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPending(t *testing.T) {
	r, _, _ := setupRouter(t)

	// register an event reminder, then expect it in the dump
	w := doJSON(t, r, http.MethodPost, "/api/admin/notifications/events/evt-1",
		gin.H{"lead_minutes": 60})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/admin/notifications/pending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "evt-1", resp[0].ID)
	assert.Equal(t, "Eid Night Programme in 1 hour", resp[0].Title)
}
