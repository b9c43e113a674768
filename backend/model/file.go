package model

import (
	"time"
)

// File is the metadata row for one uploaded blob. Rows are immutable after
// creation and never deleted.
type File struct {
	Id           string    `json:"id" gorm:"primaryKey;size:36"`
	OriginalName string    `json:"original_name" gorm:"size:255;not null"`
	StoredName   string    `json:"-" gorm:"uniqueIndex;size:255;not null"`
	MimeType     string    `json:"mime_type" gorm:"size:128"`
	Size         int64     `json:"size"`
	UploadedAt   time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}
