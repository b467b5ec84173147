package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/LJTian/RTVINews/internal/collector"
	"github.com/LJTian/RTVINews/internal/export"
	"github.com/LJTian/RTVINews/internal/processor"
	"github.com/LJTian/RTVINews/internal/render"
	"github.com/LJTian/RTVINews/internal/scheduler"
)

const archiveHTML = `<html><body>
<div class="arch-block"><a href="/news/1"><h2 class="arch-title">Первая</h2></a><div class="date">10:00</div></div>
<div class="arch-block"><a href="/news/2"><h2 class="arch-title">Вторая</h2></a><div class="date">11:00</div></div>
<div class="arch-block"><a href="/news/3"><h2 class="arch-title">Третья</h2></a><div class="date">12:00</div></div>
</body></html>`

type response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Items      []collector.News `json:"items"`
		Text       string           `json:"text"`
		ExportPath string           `json:"exportPath"`
	} `json:"data"`
}

func setupRouter(t *testing.T, dest string) (*gin.Engine, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hits := 0
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, archiveHTML)
	}))
	t.Cleanup(source.Close)

	f := collector.NewArchiveFetcher("TestBot/1.0", 5*time.Second, zerolog.Nop())
	s := scheduler.New(f, processor.NewSimpleProcessor(""), export.NewExporter("", zerolog.Nop()), render.NewDisplay(), dest, zerolog.Nop())

	r := gin.New()
	NewServer(s, source.URL+"/news/", zerolog.Nop()).RegisterRoutes(r)
	return r, &hits
}

func postNews(r *gin.Engine, body string) (*httptest.ResponseRecorder, response) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/news", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, filepath.Join(t.TempDir(), "rtvi.xlsx"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestCollectNewsSuccess(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "rtvi.xlsx")
	r, hits := setupRouter(t, dest)

	w, resp := postNews(r, `{"count":"2"}`)
	if w.Code != http.StatusOK || resp.Code != "ok" {
		t.Fatalf("status = %d code = %q body = %s", w.Code, resp.Code, w.Body.String())
	}
	if *hits != 1 {
		t.Fatalf("expected 1 request to source, got %d", *hits)
	}
	if len(resp.Data.Items) != 2 || resp.Data.Items[0].Title != "Первая" {
		t.Fatalf("unexpected items: %+v", resp.Data.Items)
	}
	if resp.Data.ExportPath != dest {
		t.Fatalf("exportPath = %q, want %q", resp.Data.ExportPath, dest)
	}

	page := httptest.NewRecorder()
	r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
	if page.Body.String() != resp.Data.Text || !strings.HasPrefix(page.Body.String(), "1. 10:00 - Первая (/news/1)") {
		t.Fatalf("display = %q", page.Body.String())
	}

	dl := httptest.NewRecorder()
	r.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	if dl.Code != http.StatusOK || dl.Body.Len() == 0 {
		t.Fatalf("download status = %d, len = %d", dl.Code, dl.Body.Len())
	}
}

func TestCollectNewsValidationErrors(t *testing.T) {
	r, hits := setupRouter(t, filepath.Join(t.TempDir(), "rtvi.xlsx"))

	cases := []struct {
		body string
		code string
	}{
		{`{"count":"abc"}`, "not_an_integer"},
		{`{"count":"15"}`, "out_of_range"},
		{`{}`, "not_an_integer"},
	}
	for _, c := range cases {
		w, resp := postNews(r, c.body)
		if w.Code != http.StatusBadRequest || resp.Code != c.code {
			t.Fatalf("body %s: status = %d code = %q", c.body, w.Code, resp.Code)
		}

		page := httptest.NewRecorder()
		r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
		if page.Body.String() != resp.Message {
			t.Fatalf("display should show %q, got %q", resp.Message, page.Body.String())
		}
	}
	if *hits != 0 {
		t.Fatalf("validation failure must not reach the network, got %d hits", *hits)
	}
}

func TestCollectNewsFetchFailure(t *testing.T) {
	r, _ := setupRouter(t, filepath.Join(t.TempDir(), "rtvi.xlsx"))

	closed := httptest.NewServer(http.NotFoundHandler())
	url := closed.URL
	closed.Close()

	w, resp := postNews(r, fmt.Sprintf(`{"url":%q,"count":"3"}`, url))
	if w.Code != http.StatusBadGateway || resp.Code != "fetch_failed" {
		t.Fatalf("status = %d code = %q", w.Code, resp.Code)
	}
}

func TestCollectNewsExportFailure(t *testing.T) {
	r, _ := setupRouter(t, filepath.Join(t.TempDir(), "missing", "rtvi.xlsx"))

	w, resp := postNews(r, `{"count":"3"}`)
	if w.Code != http.StatusOK || resp.Code != "export_failed" {
		t.Fatalf("status = %d code = %q", w.Code, resp.Code)
	}
	if len(resp.Data.Items) != 3 || resp.Data.Text == "" {
		t.Fatalf("items and text should still be returned: %+v", resp.Data)
	}
}

func TestDownloadExportBeforeAnyRun(t *testing.T) {
	r, _ := setupRouter(t, filepath.Join(t.TempDir(), "rtvi.xlsx"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestCollectNewsInvalidJSON(t *testing.T) {
	r, _ := setupRouter(t, filepath.Join(t.TempDir(), "rtvi.xlsx"))

	w, resp := postNews(r, `{`)
	if w.Code != http.StatusBadRequest || resp.Code != "invalid_request" {
		t.Fatalf("status = %d code = %q", w.Code, resp.Code)
	}
}
