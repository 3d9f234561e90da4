// Package events fetches the community calendar feed (ICS) and
// normalizes it into model.Event values.
package events

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/model"
)

type Feed struct {
	url    string
	client *http.Client
}

func NewFeed(url string) *Feed {
	return &Feed{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads and parses the ICS feed. A VEVENT that cannot be
// parsed is logged and skipped; the rest of the calendar still loads.
func (f *Feed) Fetch(ctx context.Context) ([]model.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build calendar request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch calendar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch calendar: unexpected status %d", resp.StatusCode)
	}

	cal, err := ical.ParseCalendar(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	return Normalize(cal), nil
}

// Normalize converts parsed VEVENTs into model.Event values, skipping
// entries without a UID. Missing optional fields stay zero-valued.
func Normalize(cal *ical.Calendar) []model.Event {
	out := make([]model.Event, 0, len(cal.Events()))

	for _, ve := range cal.Events() {
		ev, err := normalizeVEvent(ve)
		if err != nil {
			log.Warn().Err(err).Msg("calendar event skipped")
			continue
		}
		out = append(out, ev)
	}
	return out
}

func normalizeVEvent(ve *ical.VEvent) (model.Event, error) {
	var out model.Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, fmt.Errorf("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyUrl); p != nil {
		out.URL = p.Value
	}

	// Zero time when the feed omits DTSTART/DTEND; the scheduler
	// refuses to register reminders for such events.
	if start, err := ve.GetStartAt(); err == nil {
		out.Start = start
	}
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	}

	return out, nil
}
