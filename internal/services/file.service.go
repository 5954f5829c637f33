package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/pkg/filestore"
	"github.com/salestrack/customer-registry/pkg/logger"
	"github.com/salestrack/customer-registry/pkg/prom"
)

type FileRepository interface {
	Create(ctx context.Context, f *model.CustomerFile) (*model.CustomerFile, error)
	Get(ctx context.Context, id int64) (*model.CustomerFile, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerFile, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerGetter interface {
	Get(ctx context.Context, id int64) (*model.Customer, error)
}

type FileService struct {
	fileRepo     FileRepository
	customerRepo CustomerGetter
	store        *filestore.Store
	maxBytes     int64
}

func NewFileService(fileRepo FileRepository, customerRepo CustomerGetter, store *filestore.Store, maxBytes int64) *FileService {
	return &FileService{
		fileRepo:     fileRepo,
		customerRepo: customerRepo,
		store:        store,
		maxBytes:     maxBytes,
	}
}

// Store validates the upload, writes the blob first and only then inserts
// the describing row. A failed row insert unlinks the fresh blob so the
// medium is not littered; a failed blob write inserts nothing.
func (s *FileService) Store(ctx context.Context, p model.FileUploadRequest) (*model.CustomerFile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !s.store.ExtensionAllowed(p.Filename) {
		return nil, model.ErrExtensionNotAllowed
	}
	if s.maxBytes > 0 && int64(len(p.Content)) > s.maxBytes {
		return nil, model.ErrFileTooLarge
	}

	if _, err := s.customerRepo.Get(ctx, p.CustomerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	storageName := s.store.StorageName(p.CustomerID, p.Filename, now)

	written, err := s.store.Save(storageName, p.Content, s.maxBytes)
	if err != nil {
		if errors.Is(err, filestore.ErrTooLarge) {
			return nil, model.ErrFileTooLarge
		}
		return nil, fmt.Errorf("store blob: %w", err)
	}

	created, err := s.fileRepo.Create(ctx, &model.CustomerFile{
		CustomerID:   p.CustomerID,
		StorageName:  storageName,
		OriginalName: filestore.SanitizeFilename(p.Filename),
		Description:  p.Description,
		SizeBytes:    written,
		UploadedAt:   now,
	})
	if err != nil {
		if rmErr := s.store.Remove(storageName); rmErr != nil {
			logger.Warn("orphan blob left after failed row insert",
				"storage_name", storageName, "error", rmErr)
		}
		return nil, err
	}

	prom.IncrCounter(prom.SystemFiles, prom.MetricFilesUploaded)
	prom.ObserveHistogram(prom.SystemFiles, prom.MetricFileUploadSizeBytes, float64(written))
	return created, nil
}

// Retrieve returns the file row and its content. A row whose blob has gone
// missing (crash between writes, manual disk cleanup) reports ErrBlobMissing
// rather than failing hard: the row-to-blob link is only weakly enforced.
func (s *FileService) Retrieve(ctx context.Context, id int64) (*model.CustomerFile, []byte, error) {
	file, err := s.fileRepo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	content, err := s.store.Open(file.StorageName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", model.ErrBlobMissing, file.StorageName)
		}
		return nil, nil, fmt.Errorf("read blob: %w", err)
	}

	return file, content, nil
}

// Delete removes the blob best-effort, then the row. The row is the source
// of truth: a stray blob after a failed removal is an accepted leak, logged
// as a warning, never a reason to keep the row.
func (s *FileService) Delete(ctx context.Context, id int64) error {
	file, err := s.fileRepo.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(file.StorageName); err != nil {
		logger.Warn("blob removal failed, deleting row anyway",
			"storage_name", file.StorageName, "error", err)
	}

	if err := s.fileRepo.Delete(ctx, id); err != nil {
		return err
	}

	prom.IncrCounter(prom.SystemFiles, prom.MetricFilesDeleted)
	return nil
}

func (s *FileService) List(ctx context.Context, customerID int64) ([]*model.CustomerFile, error) {
	return s.fileRepo.ListByCustomer(ctx, customerID)
}
