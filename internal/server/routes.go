package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/a3tai/syllabus-digest/internal/archive"
	"github.com/a3tai/syllabus-digest/internal/calendar"
	"github.com/a3tai/syllabus-digest/internal/config"
	"github.com/a3tai/syllabus-digest/internal/digest"
	"github.com/a3tai/syllabus-digest/internal/render"
)

const anchorLayout = "2006-01-02"

// API holds the handlers' collaborators.
type API struct {
	cfg       *config.Config
	processor *digest.Processor
}

// NewAPI creates the handler set backed by one shared processor.
func NewAPI(cfg *config.Config) *API {
	return &API{
		cfg:       cfg,
		processor: digest.NewProcessor(cfg.MaxFileSize, cfg.Weeks),
	}
}

func registerRoutes(r *gin.Engine, api *API) {
	r.GET("/health", api.handleHealth)

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/generate", api.handleGenerate)
		apiGroup.POST("/calendar", api.handleCalendar)
	}
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readUploads pulls every file of the multipart "files" field into memory
// in upload order.
func readUploads(form *multipart.Form) ([]digest.Upload, error) {
	headers := form.File["files"]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no files uploaded")
	}

	uploads := make([]digest.Upload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", header.Filename, err)
		}
		uploads = append(uploads, digest.Upload{Filename: header.Filename, Data: data})
	}
	return uploads, nil
}

// handleGenerate processes all uploaded syllabi and responds with a zip
// holding the unified summary PDF plus the calendar of recurring classes
// and detected dates. An optional "anchor" form field (YYYY-MM-DD) fixes
// the first week of the recurring schedule.
func (a *API) handleGenerate(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploads, err := readUploads(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var anchor time.Time
	if raw := c.PostForm("anchor"); raw != "" {
		anchor, err = time.Parse(anchorLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid anchor date %q, want YYYY-MM-DD", raw)})
			return
		}
	}

	now := time.Now()
	result := a.processor.Process(uploads, now)
	if len(result.Records) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "no se pudo extraer información de ningún archivo",
			"diagnostics": result.Diagnostics,
		})
		return
	}

	summary, err := render.Summary(result.Records, result.Diagnostics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	occurrences := a.processor.Occurrences(result, anchor, now)
	bundle, err := archive.Bundle(map[string][]byte{
		"resumen.pdf":    summary,
		"calendario.ics": calendar.Encode(occurrences, now),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=syllabus-digest.zip`)
	c.Data(http.StatusOK, "application/zip", bundle)
}

// handleCalendar mirrors the original single-artifact endpoint: it emits
// only the unified ICS of dated events detected across all uploads.
func (a *API) handleCalendar(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uploads, err := readUploads(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	result := a.processor.Process(uploads, now)
	occurrences := a.processor.EventOccurrences(result)
	if len(occurrences) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":       "no se encontraron eventos con fecha",
			"diagnostics": result.Diagnostics,
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename=calendario_unificado.ics`)
	c.Data(http.StatusOK, "text/calendar", calendar.Encode(occurrences, now))
}
