package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/events"
	"github.com/masjidtech/minaret/internal/http/api"
	adminapi "github.com/masjidtech/minaret/internal/http/api/admin/endpoints"
	publicapi "github.com/masjidtech/minaret/internal/http/api/public/endpoints"
	"github.com/masjidtech/minaret/internal/notify"
	"github.com/masjidtech/minaret/internal/prayertimes"
	"github.com/masjidtech/minaret/internal/scheduler"
	"github.com/masjidtech/minaret/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	storageSystem storage.Storage,
	sched *scheduler.Scheduler,
	center notify.Center,
	prayerFeed *prayertimes.Feed,
	eventFeed *events.Feed,
	clk clock.Clock,
) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/public",
	},
		publicapi.PrayerTimesModule(prayerFeed, clk),
		publicapi.EventsModule(eventFeed),
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
		Store:     store,
	},
		adminapi.AuthSessionModule(store),
		adminapi.NotificationModule(store, sched, eventFeed, center),
		adminapi.StreakModule(store, sched, clk),
		adminapi.SoundModule(storageSystem, sched),
	)

	// Locally stored sound assets
	if !env.UseSpaces {
		r.Static("/sounds", "./uploads")
	}
}
