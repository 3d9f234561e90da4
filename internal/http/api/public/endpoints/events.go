package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/http/api"
	"github.com/masjidtech/minaret/internal/http/api/public/packets"
	"github.com/masjidtech/minaret/internal/model"
)

type EventSource interface {
	Fetch(ctx context.Context) ([]model.Event, error)
}

type EventsController struct {
	events EventSource
}

func EventsModule(events EventSource) api.Module {
	ctl := &EventsController{events: events}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/events", ctl.listEvents)
	})
}

// GET /api/public/events
func (e *EventsController) listEvents(ctx *gin.Context) (any, *api.APIError) {
	events, err := e.events.Fetch(ctx.Request.Context())
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "calendar feed unavailable"}
	}

	response := make([]packets.EventResponse, 0, len(events))
	for _, ev := range events {
		item := packets.EventResponse{
			UID:         ev.UID,
			Summary:     ev.Summary,
			Description: ev.Description,
			Location:    ev.Location,
			URL:         ev.URL,
		}
		if !ev.Start.IsZero() {
			start := ev.Start
			item.Start = &start
		}
		if !ev.End.IsZero() {
			end := ev.End
			item.End = &end
		}
		response = append(response, item)
	}
	return response, nil
}
