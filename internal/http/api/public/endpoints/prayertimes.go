package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/public/packets"
	"github.com/masjidtech/minaret/internal/prayertimes"
	"github.com/masjidtech/minaret/internal/scheduler"
)

type PrayerTimesController struct {
	times scheduler.TimesSource
	clock clock.Clock
}

func PrayerTimesModule(times scheduler.TimesSource, clk clock.Clock) api.Module {
	ctl := &PrayerTimesController{times: times, clock: clk}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/prayer-times", ctl.today)
	})
}

// GET /api/public/prayer-times
func (p *PrayerTimesController) today(ctx *gin.Context) (any, *api.APIError) {
	raw, err := p.times.FetchTimes(ctx.Request.Context())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "prayer time feed unavailable"}
	}

	now := p.clock.Now()
	times, skipped := prayertimes.Resolve(raw, now)
	p.times.FillSunTimes(times, now)

	return packets.PrayerTimesResponse{
		Date:    now.Format("2006-01-02"),
		Times:   times,
		Skipped: skipped,
	}, nil
}
