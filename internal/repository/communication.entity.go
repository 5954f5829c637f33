package repository

import (
	"time"

	"github.com/salestrack/customer-registry/internal/model"
)

type CommunicationLogEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	CustomerID int64     `db:"customer_id" gorm:"column:customer_id;not null;index"`
	Details    string    `db:"details"     gorm:"column:details;not null"`
	LoggedAt   time.Time `db:"logged_at"   gorm:"column:logged_at;not null"`
}

func (CommunicationLogEntity) TableName() string {
	return "communication_logs"
}

func toCommunicationEntity(m *model.CommunicationLog) *CommunicationLogEntity {
	if m == nil {
		return nil
	}
	return &CommunicationLogEntity{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Details:    m.Details,
		LoggedAt:   m.LoggedAt,
	}
}

func toCommunicationModel(e *CommunicationLogEntity) *model.CommunicationLog {
	if e == nil {
		return nil
	}
	return &model.CommunicationLog{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Details:    e.Details,
		LoggedAt:   e.LoggedAt,
	}
}

func toCommunicationModels(entities []*CommunicationLogEntity) []*model.CommunicationLog {
	if entities == nil {
		return nil
	}
	models := make([]*model.CommunicationLog, len(entities))
	for i, e := range entities {
		models[i] = toCommunicationModel(e)
	}
	return models
}
