package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"roster-backend/chart"
	"roster-backend/models"
	"roster-backend/web"
)

const msgMissingData = "Scraped data is missing"

type RosterFetcher interface {
	FetchAll(ctx context.Context) ([]models.AthleteRecord, error)
}

type ChartRenderer interface {
	Render(records []models.AthleteRecord) (chart.Result, error)
	Path() string
}

type ReportMailer interface {
	SendReport(to, path string) error
}

// RosterController serves the scrape, render and download endpoints. Mailer
// may be nil, which disables /email-pdf.
type RosterController struct {
	Fetcher  RosterFetcher
	Renderer ChartRenderer
	Mailer   ReportMailer
	Log      zerolog.Logger
}

// GET /
func (rc *RosterController) Index(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(web.IndexHTML)
}

// GET /scrape
// Upstream and decoding failures are returned as-is and become a 500.
func (rc *RosterController) Scrape(c *fiber.Ctx) error {
	athletes, err := rc.Fetcher.FetchAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(athletes)
}

// POST /generate-pdf
func (rc *RosterController) GeneratePDF(c *fiber.Ctx) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return c.Status(fiber.StatusBadRequest).SendString(msgMissingData)
	}

	var athletes []models.AthleteRecord
	if err := json.Unmarshal(body, &athletes); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid athlete data: " + err.Error())
	}

	res, err := rc.Renderer.Render(athletes)
	if err != nil {
		if errors.Is(err, chart.ErrNoRecords) {
			return c.Status(fiber.StatusBadRequest).SendString(msgMissingData)
		}
		return err
	}

	return c.SendString(res.Path)
}

// GET /download-pdf
func (rc *RosterController) DownloadPDF(c *fiber.Ctx) error {
	path := rc.Renderer.Path()

	// Read on every request so a freshly rendered document is never served stale.
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).SendString("No PDF has been generated yet")
		}
		return err
	}

	c.Attachment(filepath.Base(path))
	return c.Send(data)
}

type emailRequest struct {
	To string `json:"to"`
}

// POST /email-pdf
func (rc *RosterController) EmailPDF(c *fiber.Ctx) error {
	if rc.Mailer == nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString("Email delivery is not configured")
	}

	var req emailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid input")
	}
	req.To = strings.TrimSpace(req.To)
	if req.To == "" {
		return c.Status(fiber.StatusBadRequest).SendString("to is required")
	}

	path := rc.Renderer.Path()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).SendString("No PDF has been generated yet")
		}
		return err
	}

	if err := rc.Mailer.SendReport(req.To, path); err != nil {
		rc.Log.Error().Err(err).Str("to", req.To).Msg("failed to send report")
		return c.Status(fiber.StatusBadGateway).SendString("Failed to send report")
	}

	return c.SendString("Report sent to " + req.To)
}

// ErrorHandler writes unhandled errors as plain text. Anything that is not a
// *fiber.Error is reported as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(msg)
}
