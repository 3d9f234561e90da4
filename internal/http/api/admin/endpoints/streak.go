package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/admin/packets"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/scheduler"
)

type StreakController struct {
	store db.Store
	sched *scheduler.Scheduler
	clock clock.Clock
}

func StreakModule(store db.Store, sched *scheduler.Scheduler, clk clock.Clock) api.Module {
	ctl := &StreakController{store: store, sched: sched, clock: clk}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/streak", ctl.getStreak)
		c.POST("/streak/extend", ctl.extendStreak)
		c.POST("/streak/remind", ctl.remindNow)
	})
}

func (s *StreakController) getStreak(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	streak, err := s.store.GetStreak()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load streak"}
	}
	return packets.StreakResponse{Count: streak.Count, LastRead: streak.LastRead}, nil
}

// POST /streak/extend marks today's reading done and drops the pending
// reminder, since the streak is safe for the rest of the day.
func (s *StreakController) extendStreak(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	streak, err := s.store.ExtendStreak(s.clock.Now())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not extend streak"}
	}

	s.sched.CancelStreakReminder(ctx.Request.Context())

	return packets.StreakResponse{Count: streak.Count, LastRead: streak.LastRead}, nil
}

// POST /streak/remind is the manual "remind me now" path: the reminder
// fires a second later.
func (s *StreakController) remindNow(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	streak, err := s.store.GetStreak()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load streak"}
	}

	s.sched.ScheduleStreakReminder(ctx.Request.Context(), streak.Count, streak.LastRead, s.clock.Now(), false)

	return gin.H{"message": "reminder scheduled"}, nil
}
