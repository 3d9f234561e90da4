package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/clock"
	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/events"
	"github.com/masjidtech/minaret/internal/notify"
	"github.com/masjidtech/minaret/internal/prayertimes"
	appredis "github.com/masjidtech/minaret/internal/redis"
	"github.com/masjidtech/minaret/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	env := LoadEnvironment()
	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	loc := time.Local
	if env.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(env.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", env.Timezone).Msg("invalid timezone")
		}
	}
	clk := clock.System(loc)

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init failed")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}
	store := db.NewStore()
	seedAdmin(store, env)

	// redis backs the pending-notification mirror; the service still
	// works without it, just without restart recovery
	rdb, err := appredis.Init(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, pending notifications will not survive restarts")
		rdb = nil
	}

	// MQTT delivers fired notifications to subscriber devices
	var publisher notify.Publisher
	if env.MQTTBrokerURL != "" {
		mqttPub, err := notify.NewMQTTPublisher(env.MQTTBrokerURL)
		if err != nil {
			log.Fatal().Err(err).Msg("MQTT init failed")
		}
		defer mqttPub.Close()
		publisher = mqttPub
	} else {
		log.Warn().Msg("MQTT_BROKER_URL not set, fired notifications will be dropped")
	}

	center := notify.NewMemoryCenter(publisher, rdb)

	prayerFeed := prayertimes.NewFeed(env.PrayerFeedURL, env.Latitude, env.Longitude)
	eventFeed := events.NewFeed(env.CalendarFeedURL)

	sched := scheduler.New(center, clk, prayerFeed, store, env.AdhanSoundURL)

	storageSystem := InitStorage(env)

	// periodic scheduling passes: the refresh tick self-heals missed
	// registrations, the midnight pass rolls times to the new day
	c := cron.New()
	pass := func() { sched.RunDailyPass(context.Background()) }
	if _, err := c.AddFunc(env.RefreshSpec, pass); err != nil {
		log.Fatal().Err(err).Str("spec", env.RefreshSpec).Msg("invalid refresh spec")
	}
	if _, err := c.AddFunc("0 0 * * *", pass); err != nil {
		log.Fatal().Err(err).Msg("invalid midnight spec")
	}
	c.Start()
	defer c.Stop()

	// run one pass at boot so the queue fills without waiting a tick
	go pass()

	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, sched, center, prayerFeed, eventFeed, clk)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
