package repository

import (
	"time"

	"github.com/salestrack/customer-registry/internal/model"
)

type CustomerFileEntity struct {
	ID           int64     `db:"id"                gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID   int64     `db:"customer_id"       gorm:"column:customer_id;not null;index"`
	StorageName  string    `db:"storage_name"      gorm:"column:storage_name;not null;unique"`
	OriginalName string    `db:"original_filename" gorm:"column:original_filename;not null"`
	Description  string    `db:"description"       gorm:"column:description"`
	SizeBytes    int64     `db:"size_bytes"        gorm:"column:size_bytes;not null"`
	UploadedAt   time.Time `db:"uploaded_at"       gorm:"column:uploaded_at;not null"`
}

func (CustomerFileEntity) TableName() string {
	return "customer_files"
}

func toFileEntity(m *model.CustomerFile) *CustomerFileEntity {
	if m == nil {
		return nil
	}
	return &CustomerFileEntity{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		StorageName:  m.StorageName,
		OriginalName: m.OriginalName,
		Description:  m.Description,
		SizeBytes:    m.SizeBytes,
		UploadedAt:   m.UploadedAt,
	}
}

func toFileModel(e *CustomerFileEntity) *model.CustomerFile {
	if e == nil {
		return nil
	}
	return &model.CustomerFile{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		StorageName:  e.StorageName,
		OriginalName: e.OriginalName,
		Description:  e.Description,
		SizeBytes:    e.SizeBytes,
		UploadedAt:   e.UploadedAt,
	}
}

func toFileModels(entities []*CustomerFileEntity) []*model.CustomerFile {
	if entities == nil {
		return nil
	}
	models := make([]*model.CustomerFile, len(entities))
	for i, e := range entities {
		models[i] = toFileModel(e)
	}
	return models
}
