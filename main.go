package main

import (
	stdlog "log"
	"strconv"

	"roster-backend/chart"
	"roster-backend/config"
	"roster-backend/controllers"
	"roster-backend/logger"
	"roster-backend/mail"
	"roster-backend/roster"
	"roster-backend/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	log := logger.New(cfg.Log)
	logger.SetGlobalLogger(log)

	rc := &controllers.RosterController{
		Fetcher:  roster.NewFetcher(cfg.Fetcher, log),
		Renderer: chart.NewRenderer(cfg.Renderer, log),
		Log:      log,
	}
	if cfg.MailEnabled() {
		rc.Mailer = mail.NewMailer(cfg.SendGridAPIKey, cfg.EmailFrom)
	} else {
		log.Info().Msg("SENDGRID_API_KEY not set, /email-pdf disabled")
	}

	app := routes.NewApp(rc, log)

	addr := ":" + strconv.Itoa(cfg.Port)
	log.Info().
		Str("addr", addr).
		Str("listing_url", cfg.Fetcher.ListingURL).
		Int("max_pages", cfg.Fetcher.MaxPages).
		Str("output", cfg.Renderer.Path()).
		Msg("Server running")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
