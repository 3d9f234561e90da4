package main

import (
	"github.com/rs/zerolog/log"

	"github.com/masjidtech/minaret/internal/db"
	"github.com/masjidtech/minaret/internal/http/middleware"
)

// seedAdmin creates the admin account from ADMIN_EMAIL/ADMIN_PASSWORD
// when it does not exist yet. There is no signup endpoint; this is the
// only way accounts come into being.
func seedAdmin(store db.Store, env Environment) {
	if env.AdminEmail == "" || env.AdminPassword == "" {
		return
	}

	if existing, _ := store.GetUserByEmail(env.AdminEmail); existing != nil {
		return
	}

	hashed, err := middleware.HashPassword(env.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("could not hash admin password")
	}

	if _, err := store.CreateUser(env.AdminEmail, hashed, nil); err != nil {
		log.Fatal().Err(err).Msg("could not seed admin account")
	}
	log.Info().Str("email", env.AdminEmail).Msg("admin account created")
}
