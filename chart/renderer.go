// Package chart renders athlete win/loss/draw pie charts into a PDF, one
// athlete per page.
package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roster-backend/models"
)

// ErrNoRecords is returned when Render is given nothing to draw.
var ErrNoRecords = errors.New("no records to render")

const (
	DefaultDir      = "pdfs"
	DefaultFilename = "pic.pdf"
)

// Config locates the rendered document. Every render overwrites it.
type Config struct {
	Dir      string
	Filename string
}

// Path returns the document path.
func (c Config) Path() string {
	return filepath.Join(c.Dir, c.Filename)
}

// Result describes one render.
type Result struct {
	Path     string
	Pages    int
	Skipped  int
	ReportID string
}

type Renderer struct {
	cfg Config
	log zerolog.Logger
}

func NewRenderer(cfg Config, log zerolog.Logger) *Renderer {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	return &Renderer{
		cfg: cfg,
		log: log.With().Str("component", "renderer").Logger(),
	}
}

// Path returns where Render writes the document.
func (r *Renderer) Path() string {
	return r.cfg.Path()
}

// Render draws one page per record, in order, and writes the document.
// Records with no wins, losses or draws are skipped.
func (r *Renderer) Render(records []models.AthleteRecord) (Result, error) {
	if len(records) == 0 {
		return Result{}, ErrNoRecords
	}

	res := Result{
		Path:     r.cfg.Path(),
		ReportID: uuid.NewString(),
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageSize, Ht: pageSize},
	})
	pdf.SetCreator("roster-backend", false)
	pdf.SetTitle("Athlete records", false)
	pdf.SetSubject("report "+res.ReportID, false)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, a := range records {
		if a.IsEmpty() {
			res.Skipped++
			continue
		}
		drawAthletePage(pdf, tr, a)
		res.Pages++
	}

	if err := pdf.Error(); err != nil {
		return Result{}, fmt.Errorf("drawing document: %w", err)
	}

	if err := os.MkdirAll(r.cfg.Dir, 0755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}
	if err := pdf.OutputFileAndClose(res.Path); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", res.Path, err)
	}

	r.log.Info().
		Str("report_id", res.ReportID).
		Str("path", res.Path).
		Int("pages", res.Pages).
		Int("skipped", res.Skipped).
		Msg("rendered document")

	return res, nil
}

// AxisLabel formats the raw counts shown beside each chart.
func AxisLabel(wins, losses, draws int) string {
	return fmt.Sprintf("Total Wins: %d, Total Losses: %d, Total Draws: %d", wins, losses, draws)
}

func drawAthletePage(pdf *fpdf.Fpdf, tr func(string) string, a models.AthleteRecord) {
	pdf.AddPage()

	wins, losses, draws := int(a.TotalWins), int(a.TotalLosses), int(a.TotalDraws)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	centeredText(pdf, pageSize/2, 12, tr(a.Fullname))

	pdf.SetFont("Helvetica", "", 8)
	label := AxisLabel(wins, losses, draws)
	x, y := 10.0, pieCenterY
	pdf.TransformBegin()
	pdf.TransformRotate(90, x, y)
	centeredText(pdf, x, y, label)
	pdf.TransformEnd()

	drawPie(pdf, tr, []float64{float64(wins), float64(losses), float64(draws)})
}
