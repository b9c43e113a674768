package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"filedrop/backend/library/storage"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(dir, "test.db")), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.File{}))

	uploadDir := filepath.Join(dir, "uploads")
	blobs, err := storage.NewLocalStore(uploadDir)
	require.NoError(t, err)

	h := NewFileHandler(service.NewFileService(db, blobs))
	router := gin.New()
	router.POST("/upload", h.UploadFile)
	router.GET("/download/:id", h.DownloadFile)
	router.GET("/file/:id", h.GetFileInfo)

	return &testEnv{router: router, db: db, uploadDir: uploadDir}
}

func multipartBody(t *testing.T, fieldName, fileName, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, fileName))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func (e *testEnv) upload(t *testing.T, fileName, contentType, content string) map[string]any {
	t.Helper()
	body, formContentType := multipartBody(t, "file", fileName, contentType, content)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", formContentType)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "a.txt", "text/plain", "0123456789")
	assert.Equal(t, "File uploaded successfully", resp["message"])
	assert.Equal(t, "a.txt", resp["fileName"])
	assert.Equal(t, float64(10), resp["fileSize"])
	fileId, ok := resp["fileId"].(string)
	require.True(t, ok)
	require.NotEmpty(t, fileId)

	info := env.get("/file/" + fileId)
	require.Equal(t, http.StatusOK, info.Code)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(info.Body.Bytes(), &meta))
	assert.Equal(t, fileId, meta["id"])
	assert.Equal(t, "a.txt", meta["original_name"])
	assert.Equal(t, "text/plain", meta["mime_type"])
	assert.Equal(t, float64(10), meta["size"])
	assert.NotEmpty(t, meta["uploaded_at"])
	assert.NotContains(t, meta, "stored_name")

	download := env.get("/download/" + fileId)
	require.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "0123456789", download.Body.String())
	assert.Equal(t, "text/plain", download.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="a.txt"`, download.Header().Get("Content-Disposition"))
}

func TestUploadWithoutFilePart(t *testing.T) {
	env := newTestEnv(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No file uploaded"}`, w.Body.String())

	// No side effects: the table stays empty and no blob was written.
	var count int64
	require.NoError(t, env.db.Model(&model.File{}).Count(&count).Error)
	assert.Zero(t, count)
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnknownIdReturnsNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/download/unknown-id", "/file/unknown-id"} {
		w := env.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.JSONEq(t, `{"error":"File not found"}`, w.Body.String(), path)
	}
}

func TestSameNameUploadsStayDistinct(t *testing.T) {
	env := newTestEnv(t)

	first := env.upload(t, "dup.txt", "text/plain", "first content")
	second := env.upload(t, "dup.txt", "text/plain", "second content")
	assert.NotEqual(t, first["fileId"], second["fileId"])

	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	firstDownload := env.get("/download/" + first["fileId"].(string))
	require.Equal(t, http.StatusOK, firstDownload.Code)
	assert.Equal(t, "first content", firstDownload.Body.String())

	secondDownload := env.get("/download/" + second["fileId"].(string))
	require.Equal(t, http.StatusOK, secondDownload.Code)
	assert.Equal(t, "second content", secondDownload.Body.String())
}

func TestOrphanedMetadataRow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "gone.bin", "application/octet-stream", "soon deleted")
	fileId := resp["fileId"].(string)

	// Delete the blob out from under the metadata row.
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.Remove(filepath.Join(env.uploadDir, entries[0].Name())))

	download := env.get("/download/" + fileId)
	assert.Equal(t, http.StatusNotFound, download.Code)
	assert.JSONEq(t, `{"error":"File not found"}`, download.Body.String())

	// Metadata alone is still served.
	info := env.get("/file/" + fileId)
	assert.Equal(t, http.StatusOK, info.Code)
}

func TestDownloadDefaultsMimeType(t *testing.T) {
	env := newTestEnv(t)

	resp := env.upload(t, "raw.bin", "", "\x00\x01\x02")
	download := env.get("/download/" + resp["fileId"].(string))
	require.Equal(t, http.StatusOK, download.Code)
	assert.Equal(t, "application/octet-stream", download.Header().Get("Content-Type"))
}
