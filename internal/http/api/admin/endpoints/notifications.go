package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/admin/packets"
	"github.com/masjidtech/minaret/internal/model"
	"github.com/masjidtech/minaret/internal/notify"
	"github.com/masjidtech/minaret/internal/prayertimes"
	"github.com/masjidtech/minaret/internal/scheduler"
)

// EventSource lists the community calendar events a reminder can be
// attached to.
type EventSource interface {
	Fetch(ctx context.Context) ([]model.Event, error)
}

type NotificationController struct {
	store  db.Store
	sched  *scheduler.Scheduler
	events EventSource
	center notify.Center
}

func NotificationModule(store db.Store, sched *scheduler.Scheduler, events EventSource, center notify.Center) api.Module {
	ctl := &NotificationController{store: store, sched: sched, events: events, center: center}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/notifications/prayers", ctl.listPrayerToggles)
		c.PUT("/notifications/prayers", ctl.setPrayerToggle)
		c.GET("/notifications/pending", ctl.listPending)

		c.GET("/notifications/events/:uid", ctl.eventNotifying)
		c.POST("/notifications/events/:uid", ctl.scheduleEvent)
	})
}

func (n *NotificationController) listPrayerToggles(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	stored, err := n.store.ListPrayerToggles()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list toggles"}
	}

	// absent rows read as disabled
	toggles := make(map[string]bool)
	for _, prayer := range prayertimes.DisplayNames() {
		toggles[prayer] = stored[prayer]
	}
	return packets.TogglesResponse{Toggles: toggles}, nil
}

func (n *NotificationController) setPrayerToggle(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	var request packets.ToggleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, ok := prayertimes.ByDisplay(request.Prayer); !ok {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown prayer"}
	}

	if err := n.store.SetPrayerToggle(request.Prayer, *request.Active); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update toggle"}
	}

	// re-run the scheduling pass so the pending set reflects the new
	// toggle without waiting for the next cron tick
	go n.sched.RunDailyPass(context.Background())

	return gin.H{"prayer": request.Prayer, "active": *request.Active}, nil
}

func (n *NotificationController) listPending(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	pending, err := n.center.Pending(ctx.Request.Context())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list pending notifications"}
	}

	response := make([]packets.PendingResponse, 0, len(pending))
	for _, req := range pending {
		response = append(response, packets.PendingResponse{
			ID:      req.ID,
			Trigger: req.Trigger,
			Title:   req.Title,
		})
	}
	return response, nil
}

func (n *NotificationController) eventNotifying(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	uid := ctx.Param("uid")

	notifying, lead := n.sched.IsNotifying(ctx.Request.Context(), uid)
	if lead == nil {
		// the stored choice outlives the pending request, so the UI can
		// re-display it after the reminder fired or the process restarted
		stored, err := n.store.GetEventLead(uid)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load event lead"}
		}
		lead = stored
	}
	return packets.EventNotifyingResponse{UID: uid, Notifying: notifying, LeadMinutes: lead}, nil
}

func (n *NotificationController) scheduleEvent(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	uid := ctx.Param("uid")

	var request packets.EventLeadRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	events, err := n.events.Fetch(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("calendar feed unavailable")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "calendar feed unavailable"}
	}

	var event *model.Event
	for i := range events {
		if events[i].UID == uid {
			event = &events[i]
			break
		}
	}
	if event == nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "event not found"}
	}

	notifying := n.sched.ScheduleEventNotification(ctx.Request.Context(), *event, request.LeadMinutes)

	response := packets.EventNotifyingResponse{UID: uid, Notifying: notifying}
	if notifying {
		response.LeadMinutes = request.LeadMinutes
	}
	return response, nil
}
