package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/syllabus-digest/internal/config"
)

func testHandler() http.Handler {
	return New(config.DefaultConfig()).http.Handler
}

// multipartBody builds a multipart form with the given files under the
// "files" field plus optional extra string fields.
func multipartBody(t *testing.T, files map[string][]byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	testHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ok", payload["status"])
}

func TestGenerateRejectsEmptyForm(t *testing.T) {
	body, contentType := multipartBody(t, nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)

	testHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateRejectsInvalidAnchor(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string][]byte{"curso.pdf": []byte("%PDF-1.7\n%%EOF")},
		map[string]string{"anchor": "06/01/2025"},
	)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)

	testHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "anchor")
}

func TestGenerateUnreadableFilesReportDiagnostics(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string][]byte{"roto.pdf": []byte("this is not a pdf")},
		nil,
	)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)

	testHandler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var payload struct {
		Error       string   `json:"error"`
		Diagnostics []string `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload.Diagnostics)
	assert.Contains(t, payload.Diagnostics[0], "roto.pdf: ")
}

// A batch whose combined size exceeds the per-file limit must still be
// accepted as long as each file stays under it.
func TestGenerateBatchLargerThanPerFileLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxFileSize = 1024

	files := map[string][]byte{}
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		files[name] = append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 800)...)
	}
	body, contentType := multipartBody(t, files, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)

	New(cfg).http.Handler.ServeHTTP(rec, req)

	// The files are unreadable junk, so no course records come out, but
	// the batch itself reaches the per-file pipeline instead of being
	// rejected wholesale.
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var payload struct {
		Diagnostics []string `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	joined := strings.Join(payload.Diagnostics, "\n")
	for _, name := range []string{"a.pdf:", "b.pdf:", "c.pdf:"} {
		assert.Contains(t, joined, name)
	}
}

func TestGenerateOversizedFileGetsDiagnostic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MaxFileSize = 1024

	body, contentType := multipartBody(t,
		map[string][]byte{"grande.pdf": append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte("x"), 2048)...)},
		nil,
	)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", body)
	req.Header.Set("Content-Type", contentType)

	New(cfg).http.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var payload struct {
		Diagnostics []string `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	joined := strings.Join(payload.Diagnostics, "\n")
	assert.Contains(t, joined, "grande.pdf:")
	assert.Contains(t, joined, "too large")
}

func TestCalendarWithoutEventsIs422(t *testing.T) {
	body, contentType := multipartBody(t,
		map[string][]byte{"roto.pdf": []byte("no pdf aquí")},
		nil,
	)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/calendar", body)
	req.Header.Set("Content-Type", contentType)

	testHandler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")

	testHandler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
