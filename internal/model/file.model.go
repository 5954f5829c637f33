package model

import (
	"strings"
	"time"
)

// CustomerFile describes an uploaded blob. StorageName is the unique name
// the content lives under on the storage medium; OriginalName is what the
// user called it.
type CustomerFile struct {
	ID           int64     `json:"id"`
	CustomerID   int64     `json:"customer_id"`
	StorageName  string    `json:"-"`
	OriginalName string    `json:"original_name"`
	Description  string    `json:"description,omitempty"`
	SizeBytes    int64     `json:"size_bytes"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type FileUploadRequest struct {
	CustomerID  int64
	Filename    string
	Description string
	Content     []byte
}

func (p *FileUploadRequest) Validate() error {
	p.Filename = strings.TrimSpace(p.Filename)
	if p.Filename == "" {
		return ErrFilenameRequired
	}
	p.Description = strings.TrimSpace(p.Description)
	return nil
}
