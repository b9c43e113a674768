package handler

import (
	"errors"
	"net/http"

	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FileHandler struct {
	files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

// UploadFile accepts a single multipart file under the "file" field, stores
// the bytes, records the metadata and returns the generated identifier.
func (h *FileHandler) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		common.RespError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	src, err := header.Open()
	if err != nil {
		common.SysError("failed to open multipart file " + header.Filename + ": " + err.Error())
		common.RespError(c, http.StatusInternalServerError, "Failed to save file information")
		return
	}
	defer src.Close()

	record, err := h.files.Upload(header.Filename, header.Header.Get("Content-Type"), src)
	if err != nil {
		common.SysError("failed to store upload " + header.Filename + ": " + err.Error())
		common.RespError(c, http.StatusInternalServerError, "Failed to save file information")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "File uploaded successfully",
		"fileId":   record.Id,
		"fileName": record.OriginalName,
		"fileSize": record.Size,
	})
}

// DownloadFile streams the blob back with the stored mime type and an
// attachment disposition carrying the original file name.
func (h *FileHandler) DownloadFile(c *gin.Context) {
	record, ok := h.lookup(c)
	if !ok {
		return
	}

	fullPath, err := h.files.ResolveBlob(record)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			common.SysError("file record " + record.Id + " has no blob on disk: " + record.StoredName)
		} else {
			common.SysError("failed to resolve blob for file " + record.Id + ": " + err.Error())
		}
		common.RespError(c, http.StatusNotFound, "File not found")
		return
	}

	mimeType := record.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	c.Header("Content-Type", mimeType)
	c.FileAttachment(fullPath, record.OriginalName)
}

// GetFileInfo returns the metadata row only; it does not check whether the
// blob is still on disk.
func (h *FileHandler) GetFileInfo(c *gin.Context) {
	record, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, record)
}

// lookup fetches the metadata row for the :id path param, writing the
// error response itself when the lookup fails.
func (h *FileHandler) lookup(c *gin.Context) (*model.File, bool) {
	id := c.Param("id")
	record, err := h.files.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.RespError(c, http.StatusNotFound, "File not found")
		} else {
			common.SysError("failed to query file " + id + ": " + err.Error())
			common.RespError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}
	return record, true
}
