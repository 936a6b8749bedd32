package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster-backend/chart"
	"roster-backend/controllers"
	"roster-backend/roster"
)

type fakeMailer struct {
	to   string
	path string
	err  error
}

func (m *fakeMailer) SendReport(to, path string) error {
	m.to, m.path = to, path
	return m.err
}

// upstream serves two listing pages and then an empty one.
func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[int]string{
		1: `<div class="c-listing-athlete__text">
			<span class="c-listing-athlete__nickname">"Bones"</span>
			<span class="c-listing-athlete__name">Jon Jones</span>
			<span class="c-listing-athlete__title">Heavyweight Division</span>
			<span class="c-listing-athlete__record">27-1-0 (W-L-D)</span>
		</div>`,
		2: `<div class="c-listing-athlete__text">
			<span class="c-listing-athlete__name">Newcomer</span>
			<span class="c-listing-athlete__record">0-0-0 (W-L-D)</span>
		</div>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		fmt.Fprintf(w, "<html><body>%s</body></html>", pages[page])
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestApp(t *testing.T, listingURL string, mailer controllers.ReportMailer) (*fiber.App, *chart.Renderer) {
	t.Helper()
	log := zerolog.Nop()
	renderer := chart.NewRenderer(chart.Config{Dir: filepath.Join(t.TempDir(), "pdfs"), Filename: "pic.pdf"}, log)
	rc := &controllers.RosterController{
		Fetcher:  roster.NewFetcher(roster.FetcherConfig{ListingURL: listingURL, MaxPages: 5}, log),
		Renderer: renderer,
		Mailer:   mailer,
		Log:      log,
	}
	return NewApp(rc, log), renderer
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(data)
}

func TestIndex(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	resp, body := do(t, app, "GET", "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, "Athlete Record Charts")
}

func TestScrape(t *testing.T) {
	srv := upstream(t)
	app, _ := newTestApp(t, srv.URL+"/athletes/all?page=", nil)

	resp, body := do(t, app, "GET", "/scrape", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[
		{"Nickname":"\"Bones\"","Fullname":"Jon Jones","Weight":"Heavyweight Division","Record":"27-1-0 (W-L-D)",
		 "totalwins":27,"totalloss":1,"totaldraws":0,"totalfights":28},
		{"Nickname":"","Fullname":"Newcomer","Weight":"","Record":"0-0-0 (W-L-D)",
		 "totalwins":0,"totalloss":0,"totaldraws":0,"totalfights":0}
	]`, body)
}

func TestScrape_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	app, _ := newTestApp(t, srv.URL+"/?page=", nil)

	resp, body := do(t, app, "GET", "/scrape", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", body)
}

func TestGeneratePDF_MissingData(t *testing.T) {
	app, renderer := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	for _, body := range []string{"", "[]", "null", "  "} {
		resp, msg := do(t, app, "POST", "/generate-pdf", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "body %q", body)
		assert.NotEmpty(t, msg)
	}

	_, err := os.Stat(renderer.Path())
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestGeneratePDF_InvalidJSON(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	resp, msg := do(t, app, "POST", "/generate-pdf", `{"Fullname":"not a list"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, msg, "Invalid athlete data")
}

func TestGenerateThenDownload(t *testing.T) {
	app, renderer := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	payload := `[
		{"Fullname":"Jon Jones","totalwins":27,"totalloss":1,"totaldraws":0},
		{"Fullname":"Legacy Client","totalwins":"10","totalloss":"2","totaldraws":"1"},
		{"Fullname":"Newcomer","totalwins":0,"totalloss":0,"totaldraws":0}
	]`
	resp, path := do(t, app, "POST", "/generate-pdf", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode, path)
	assert.Equal(t, renderer.Path(), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)

	resp, downloaded := do(t, app, "GET", "/download-pdf", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pic.pdf")
	assert.Equal(t, written, []byte(downloaded))
}

func TestDownloadPDF_NotGenerated(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	resp, _ := do(t, app, "GET", "/download-pdf", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmailPDF(t *testing.T) {
	mailer := &fakeMailer{}
	app, renderer := newTestApp(t, "http://127.0.0.1:0/?page=", mailer)

	resp, _ := do(t, app, "POST", "/email-pdf", `{"to":"coach@example.com"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/generate-pdf", `[{"Fullname":"A","totalwins":1,"totalloss":0,"totaldraws":0}]`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/email-pdf", `{"to":"  "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, app, "POST", "/email-pdf", `{"to":"coach@example.com"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "coach@example.com", mailer.to)
	assert.Equal(t, renderer.Path(), mailer.path)

	mailer.err = errors.New("sendgrid error: 401")
	resp, _ = do(t, app, "POST", "/email-pdf", `{"to":"coach@example.com"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestEmailPDF_NotConfigured(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	resp, _ := do(t, app, "POST", "/email-pdf", `{"to":"coach@example.com"}`)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCORSHeaders(t *testing.T) {
	app, _ := newTestApp(t, "http://127.0.0.1:0/?page=", nil)

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
