package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"roster-backend/controllers"
	"roster-backend/middleware"
)

// NewApp builds the Fiber application with middleware and all routes.
func NewApp(rc *controllers.RosterController, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "roster-backend",
		ErrorHandler:          controllers.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	RosterRoutes(app, rc)
	return app
}

func RosterRoutes(app *fiber.App, rc *controllers.RosterController) {
	app.Get("/", rc.Index)
	app.Get("/scrape", rc.Scrape)
	app.Post("/generate-pdf", rc.GeneratePDF)
	app.Get("/download-pdf", rc.DownloadPDF)
	app.Post("/email-pdf", rc.EmailPDF)
}
