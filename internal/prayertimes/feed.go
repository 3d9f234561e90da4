package prayertimes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"github.com/sj14/astral/pkg/astral"
)

const feedCacheKey = "prayer-times"

// Feed scrapes the daily prayer-time table from the configured page.
// The page lists times inside "#prayer_time ul > li" items, with the
// prayer name in the item text and the time in a nested span.
type Feed struct {
	url      string
	client   *http.Client
	cache    *gocache.Cache
	observer astral.Observer
	hasCoord bool
}

// NewFeed builds a Feed for url. Latitude/longitude enable the
// astronomical fallback for Sunrise/Sunset when the page omits them;
// pass zeros to disable it.
func NewFeed(url string, latitude, longitude float64) *Feed {
	return &Feed{
		url:      url,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    gocache.New(30*time.Minute, 10*time.Minute),
		observer: astral.Observer{Latitude: latitude, Longitude: longitude},
		hasCoord: latitude != 0 || longitude != 0,
	}
}

// FetchTimes returns the raw label -> "H[H]MM" mapping for today.
// Responses are memoized for the cache TTL so the periodic scheduling
// passes do not hammer the upstream page.
func (f *Feed) FetchTimes(ctx context.Context) (map[string]string, error) {
	if cached, ok := f.cache.Get(feedCacheKey); ok {
		return cached.(map[string]string), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prayer times: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch prayer times: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse prayer times page: %w", err)
	}

	times := make(map[string]string)
	doc.Find("#prayer_time ul > li").Each(func(_ int, item *goquery.Selection) {
		value := strings.TrimSpace(item.Find("span").Text())
		name := letters(item.Text())
		if name == "" || value == "" {
			return
		}
		times[name] = digits(value)
	})

	if len(times) == 0 {
		return nil, fmt.Errorf("parse prayer times page: no entries found")
	}

	f.cache.Set(feedCacheKey, times, gocache.DefaultExpiration)
	log.Debug().Int("count", len(times)).Msg("fetched prayer time feed")
	return times, nil
}

// FillSunTimes adds Sunrise/Sunset entries computed from the observer
// coordinates when the feed did not provide them. Times are keyed by
// display name, matching Resolve output.
func (f *Feed) FillSunTimes(times map[string]time.Time, now time.Time) {
	if !f.hasCoord {
		return
	}

	if _, ok := times["Sunrise"]; !ok {
		if sunrise, err := astral.Sunrise(f.observer, now); err == nil {
			times["Sunrise"] = sunrise.In(now.Location())
		} else {
			log.Warn().Err(err).Msg("sunrise fallback failed")
		}
	}
	if _, ok := times["Sunset"]; !ok {
		if sunset, err := astral.Sunset(f.observer, now); err == nil {
			times["Sunset"] = sunset.In(now.Location())
		} else {
			log.Warn().Err(err).Msg("sunset fallback failed")
		}
	}
}

// letters strips everything but unicode letters, mirroring how the
// feed page mixes the prayer name and time in one list item.
func letters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// digits strips separators from a displayed time ("6:30" -> "630").
func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
