package main

import (
	"log"
	"os"
	"strconv"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string

	PrayerFeedURL   string
	CalendarFeedURL string
	Latitude        float64
	Longitude       float64
	Timezone        string

	AdhanSoundURL string
	RefreshSpec   string

	AdminEmail    string
	AdminPassword string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:    os.Getenv("APP_ENV"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("JWT_SECRET"),
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		PrayerFeedURL:   os.Getenv("PRAYER_FEED_URL"),
		CalendarFeedURL: os.Getenv("CALENDAR_FEED_URL"),
		Latitude:        floatEnv("LATITUDE"),
		Longitude:       floatEnv("LONGITUDE"),
		Timezone:        os.Getenv("TIMEZONE"),

		AdhanSoundURL: os.Getenv("ADHAN_SOUND_URL"),
		RefreshSpec:   os.Getenv("REFRESH_SPEC"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.RefreshSpec == "" {
		env.RefreshSpec = "@every 30m"
	}

	// Basic validation
	if env.DatabaseURL == "" || env.SecretKey == "" || env.PrayerFeedURL == "" {
		log.Fatal("Missing required environment variables")
	}

	return env
}

func floatEnv(key string) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return v
}
