package service

import (
	"fmt"
	"io"

	"filedrop/backend/library/storage"
	"filedrop/backend/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileService owns the two process-wide resources of the system: the
// metadata store handle and the blob store. Constructing it explicitly keeps
// handlers free of globals and lets tests run against isolated instances.
type FileService struct {
	db    *gorm.DB
	blobs *storage.LocalStore
}

func NewFileService(db *gorm.DB, blobs *storage.LocalStore) *FileService {
	return &FileService{db: db, blobs: blobs}
}

// Upload persists the blob first and the metadata row second. If the insert
// fails the blob is left behind as an orphan; it is invisible to clients and
// only surfaces in server logs.
func (s *FileService) Upload(originalName, mimeType string, src io.Reader) (*model.File, error) {
	storedName, size, err := s.blobs.Save(originalName, src)
	if err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	record := &model.File{
		Id:           uuid.New().String(),
		OriginalName: originalName,
		StoredName:   storedName,
		MimeType:     mimeType,
		Size:         size,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("save file record for blob %s: %w", storedName, err)
	}

	return record, nil
}

// Get is a point lookup by id. Unknown ids return gorm.ErrRecordNotFound.
func (s *FileService) Get(id string) (*model.File, error) {
	var record model.File
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ResolveBlob locates the on-disk file backing a metadata row. A row whose
// blob has gone missing yields storage.ErrBlobNotFound.
func (s *FileService) ResolveBlob(record *model.File) (string, error) {
	return s.blobs.Resolve(record.StoredName)
}
