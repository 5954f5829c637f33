package repository

import (
	"context"
	"errors"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/pkg/pg"
	"gorm.io/gorm"
)

type FileRepository struct {
	*pg.DB
}

func NewFileRepository(db *pg.DB) *FileRepository {
	return &FileRepository{
		db,
	}
}

func (r *FileRepository) Create(ctx context.Context, f *model.CustomerFile) (*model.CustomerFile, error) {
	entity := toFileEntity(f)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toFileModel(entity), nil
}

func (r *FileRepository) Get(ctx context.Context, id int64) (*model.CustomerFile, error) {
	var entity CustomerFileEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrFileNotFound
		}
		return nil, err
	}

	return toFileModel(&entity), nil
}

func (r *FileRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerFile, error) {
	var entities []*CustomerFileEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("uploaded_at DESC, id DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toFileModels(entities), nil
}

func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	result := r.Write(ctx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&CustomerFileEntity{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrFileNotFound
	}
	return nil
}
