package repository

import (
	"time"

	"github.com/salestrack/customer-registry/internal/model"
)

type CustomerEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Region        string    `db:"region"         gorm:"column:region;not null;index"`
	CompanyName   string    `db:"company_name"   gorm:"column:company_name;not null"`
	Address       string    `db:"address"        gorm:"column:address"`
	ContactPerson string    `db:"contact_person" gorm:"column:contact_person"`
	Mobile1       string    `db:"mobile1"        gorm:"column:mobile1"`
	Mobile2       string    `db:"mobile2"        gorm:"column:mobile2"`
	Phone         string    `db:"phone"          gorm:"column:phone"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at;not null"`
	LastUpdatedAt time.Time `db:"last_updated"   gorm:"column:last_updated;not null;index"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

func toCustomerEntity(m *model.Customer) *CustomerEntity {
	if m == nil {
		return nil
	}
	return &CustomerEntity{
		ID:            m.ID,
		Region:        string(m.Region),
		CompanyName:   m.CompanyName,
		Address:       m.Address,
		ContactPerson: m.ContactPerson,
		Mobile1:       m.Mobile1,
		Mobile2:       m.Mobile2,
		Phone:         m.Phone,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:            e.ID,
		Region:        model.Region(e.Region),
		CompanyName:   e.CompanyName,
		Address:       e.Address,
		ContactPerson: e.ContactPerson,
		Mobile1:       e.Mobile1,
		Mobile2:       e.Mobile2,
		Phone:         e.Phone,
		CreatedAt:     e.CreatedAt,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}
