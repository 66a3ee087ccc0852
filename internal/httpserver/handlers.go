package httpserver

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/cratestats/cratestats/internal/model"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

func (s *Server) handleIndex(c *gin.Context) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, nil); err != nil {
		log.Printf("httpserver: rendering index template: %v", err)
		c.String(http.StatusInternalServerError, "template error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleHealth(c *gin.Context) {
	crateCount, err := s.store.TotalCrateCount()
	if err != nil {
		log.Printf("httpserver: health check query: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read health metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      time.Since(s.startTime).String(),
		"crate_count": crateCount,
	})
}

// handleDownloadTimeseries answers POST /api/v1/downloads. The body is
// capped before decoding; the store query runs on the executor pool so
// this goroutine only waits, it never blocks inside database I/O itself.
func (s *Server) handleDownloadTimeseries(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.BodyLimit)

	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body or missing name field"})
		return
	}

	task, err := s.exec.Submit(func() (interface{}, error) {
		return s.store.DownloadTimeseries(req.Name, req.Version)
	})
	if err != nil {
		log.Printf("httpserver: scheduling downloads query for %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	result, err := task.Wait(c.Request.Context())
	if err != nil {
		log.Printf("httpserver: downloads query for %q: %v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, model.DownloadResponse{
		Name:      req.Name,
		Version:   req.Version,
		Downloads: result.([]model.DownloadPoint),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	task, err := s.exec.Submit(func() (interface{}, error) {
		return s.store.CratesPerCategory()
	})
	if err != nil {
		log.Printf("httpserver: scheduling categories query: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	result, err := task.Wait(c.Request.Context())
	if err != nil {
		log.Printf("httpserver: categories query: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": result.([]model.CategoryCount),
	})
}
