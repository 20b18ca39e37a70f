package handler // handler package contains the csv import upload endpoint

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/autoparts/catalog/internal/config"
	"github.com/autoparts/catalog/internal/middleware"
	"github.com/autoparts/catalog/internal/queue"
)

// ImportPublisher enqueues a csv import job for the background worker.
type ImportPublisher interface {
	PublishCSVImport(job queue.CSVImportJob) error
}

// UploadHandler accepts part csv files and hands them to the worker via
// the import queue. The upload directory must be reachable by the
// worker process as well.
type UploadHandler struct {
	Cfg       config.Config
	Publisher ImportPublisher
}

func NewUploadHandler(cfg config.Config, pub ImportPublisher) *UploadHandler {
	if pub == nil {
		panic("nil publisher passed to NewUploadHandler")
	}
	return &UploadHandler{Cfg: cfg, Publisher: pub}
}

// UploadCSV handles POST /v1/upload-csv. The file is persisted first,
// then a job message referencing it is published; processing itself
// happens asynchronously and the client gets a 202 right away.
func (h *UploadHandler) UploadCSV(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fieldErrors(c, http.StatusBadRequest, map[string]string{"file": "field is required"})
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".csv") {
		return fieldErrors(c, http.StatusBadRequest, map[string]string{"file": "must be a .csv file"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read upload"})
	}
	defer src.Close()

	if err := os.MkdirAll(h.Cfg.UploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}
	// Random name so concurrent uploads never clobber each other.
	dstPath := filepath.Join(h.Cfg.UploadDir, uuid.NewString()+".csv")
	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store upload"})
	}

	uploadedBy := ""
	if uid, ok := middleware.PrincipalID(c); ok {
		uploadedBy = uid.String()
	}
	job := queue.CSVImportJob{
		FilePath:   dstPath,
		UploadedBy: uploadedBy,
		UploadedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishCSVImport(job); err != nil {
		log.Printf("publish csv import job failed: %v", err)
		os.Remove(dstPath)
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "import queue unavailable"})
	}

	return c.JSON(http.StatusAccepted, echo.Map{"message": "csv file submitted for processing"})
}
