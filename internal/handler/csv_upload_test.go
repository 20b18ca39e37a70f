package handler

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autoparts/catalog/internal/config"
	"github.com/autoparts/catalog/internal/queue"
)

type fakePublisher struct {
	jobs []queue.CSVImportJob
	err  error
}

func (f *fakePublisher) PublishCSVImport(job queue.CSVImportJob) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func multipartUpload(t *testing.T, field, filename, content string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/upload-csv", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestUploadCSVAccepted(t *testing.T) {
	pub := &fakePublisher{}
	h := NewUploadHandler(config.Config{UploadDir: t.TempDir()}, pub)

	req, rec := multipartUpload(t, "file", "parts.csv", "part_number,name,details,price,quantity\n")
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.UploadCSV(c))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "csv file submitted for processing")
	require.Len(t, pub.jobs, 1)
	// The staged file must exist when the job is published.
	_, err := os.Stat(pub.jobs[0].FilePath)
	assert.NoError(t, err)
}

func TestUploadCSVMissingFile(t *testing.T) {
	h := NewUploadHandler(config.Config{UploadDir: t.TempDir()}, &fakePublisher{})

	req := httptest.NewRequest(http.MethodPost, "/v1/upload-csv", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.UploadCSV(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file")
}

func TestUploadCSVRejectsNonCSV(t *testing.T) {
	h := NewUploadHandler(config.Config{UploadDir: t.TempDir()}, &fakePublisher{})

	req, rec := multipartUpload(t, "file", "parts.xlsx", "binary")
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.UploadCSV(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "csv")
}

func TestUploadCSVBrokerDown(t *testing.T) {
	dir := t.TempDir()
	h := NewUploadHandler(config.Config{UploadDir: dir}, &fakePublisher{err: errors.New("dial refused")})

	req, rec := multipartUpload(t, "file", "parts.csv", "x\n")
	c := echo.New().NewContext(req, rec)
	require.NoError(t, h.UploadCSV(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	// The staged file is cleaned up when the job cannot be enqueued.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
