package repository

import (
	"context"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/pkg/pg"
)

type CommunicationRepository struct {
	*pg.DB
}

func NewCommunicationRepository(db *pg.DB) *CommunicationRepository {
	return &CommunicationRepository{
		db,
	}
}

func (r *CommunicationRepository) Create(ctx context.Context, log *model.CommunicationLog) (*model.CommunicationLog, error) {
	entity := toCommunicationEntity(log)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCommunicationModel(entity), nil
}

// ListByCustomer returns a customer's logs newest first. The id tiebreak
// keeps same-second entries in insertion order, newest on top.
func (r *CommunicationRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*model.CommunicationLog, error) {
	var entities []*CommunicationLogEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("logged_at DESC, id DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return toCommunicationModels(entities), nil
}
