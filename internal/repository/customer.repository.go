package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/pkg/pg"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := toCustomerEntity(c)

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toCustomerModel(entity), nil
}

// Update rewrites the mutable columns and bumps last_updated. Region and
// created_at are immutable and never touched here.
func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"company_name":   c.CompanyName,
			"address":        c.Address,
			"contact_person": c.ContactPerson,
			"mobile1":        c.Mobile1,
			"mobile2":        c.Mobile2,
			"phone":          c.Phone,
			"last_updated":   c.LastUpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Get(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("id = ?", id).
		First(&entity).
		Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCustomerNotFound
		}
		return nil, err
	}

	return toCustomerModel(&entity), nil
}

// TouchLastUpdated bumps a customer's last_updated. Called alongside a
// communication insert, inside the same transaction.
func (r *CustomerRepository) TouchLastUpdated(ctx context.Context, id int64, now time.Time) error {
	result := r.Write(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Where("id = ?", id).
		Update("last_updated", now)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) ListByRegion(ctx context.Context, region model.Region) ([]*model.CustomerSummary, error) {
	var entities []*CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("region = ?", string(region)).
		Order("last_updated DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return r.annotate(ctx, entities)
}

// Search matches a case-insensitive substring against company name, contact
// person and address. Blank queries are the caller's problem; the service
// turns them into an empty result before reaching here.
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]*model.CustomerSummary, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var entities []*CustomerEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("lower(company_name) LIKE ? OR lower(contact_person) LIKE ? OR lower(address) LIKE ?",
			pattern, pattern, pattern).
		Order("last_updated DESC").
		Find(&entities).
		Error
	if err != nil {
		return nil, err
	}

	return r.annotate(ctx, entities)
}

type logAggRow struct {
	CustomerID int64 `gorm:"column:customer_id"`
	Count      int64 `gorm:"column:cnt"`
}

type latestLogRow struct {
	CustomerID int64     `gorm:"column:customer_id"`
	LoggedAt   time.Time `gorm:"column:logged_at"`
}

// annotate decorates customer rows with their communication count and the
// timestamp of the newest log. The newest log is found through MAX(id):
// logs are append-only with monotonically increasing ids, so the highest id
// per customer is also the most recent entry. That keeps the timestamp read
// on a plain column, which scans identically on every supported driver.
func (r *CustomerRepository) annotate(ctx context.Context, entities []*CustomerEntity) ([]*model.CustomerSummary, error) {
	summaries := make([]*model.CustomerSummary, len(entities))
	if len(entities) == 0 {
		return summaries, nil
	}

	ids := make([]int64, len(entities))
	for i, e := range entities {
		ids[i] = e.ID
	}

	var counts []logAggRow
	err := r.Read(ctx).WithContext(ctx).
		Model(&CommunicationLogEntity{}).
		Select("customer_id, COUNT(id) AS cnt").
		Where("customer_id IN ?", ids).
		Group("customer_id").
		Find(&counts).
		Error
	if err != nil {
		return nil, err
	}

	var latest []latestLogRow
	err = r.Read(ctx).WithContext(ctx).
		Model(&CommunicationLogEntity{}).
		Select("customer_id, logged_at").
		Where("id IN (?)", r.Read(ctx).
			Model(&CommunicationLogEntity{}).
			Select("MAX(id)").
			Where("customer_id IN ?", ids).
			Group("customer_id")).
		Find(&latest).
		Error
	if err != nil {
		return nil, err
	}

	countByID := make(map[int64]int64, len(counts))
	for _, c := range counts {
		countByID[c.CustomerID] = c.Count
	}
	latestByID := make(map[int64]time.Time, len(latest))
	for _, l := range latest {
		latestByID[l.CustomerID] = l.LoggedAt
	}

	for i, e := range entities {
		s := &model.CustomerSummary{
			Customer:           *toCustomerModel(e),
			CommunicationCount: countByID[e.ID],
		}
		if t, ok := latestByID[e.ID]; ok {
			s.LastCommunicationAt = &t
		}
		summaries[i] = s
	}
	return summaries, nil
}

func (r *CustomerRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Count(&total).
		Error
	return total, err
}

type regionCountRow struct {
	Region string `gorm:"column:region"`
	Count  int64  `gorm:"column:cnt"`
}

// CountByRegion returns one entry per enumerated region, zero-filled for
// regions with no customers.
func (r *CustomerRepository) CountByRegion(ctx context.Context) (map[model.Region]int64, error) {
	var rows []regionCountRow
	err := r.Read(ctx).WithContext(ctx).
		Model(&CustomerEntity{}).
		Select("region, COUNT(id) AS cnt").
		Group("region").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Region]int64, len(model.Regions))
	for _, region := range model.Regions {
		counts[region] = 0
	}
	for _, row := range rows {
		counts[model.Region(row.Region)] = row.Count
	}
	return counts, nil
}

type recentCommunicationRow struct {
	CompanyName string    `gorm:"column:company_name"`
	Region      string    `gorm:"column:region"`
	Details     string    `gorm:"column:details"`
	LoggedAt    time.Time `gorm:"column:logged_at"`
}

func (r *CustomerRepository) RecentCommunications(ctx context.Context, limit int) ([]*model.RecentCommunication, error) {
	var rows []recentCommunicationRow
	err := r.Read(ctx).WithContext(ctx).
		Table("communication_logs AS cl").
		Select("c.company_name, c.region, cl.details, cl.logged_at").
		Joins("JOIN customers AS c ON cl.customer_id = c.id").
		Order("cl.logged_at DESC, cl.id DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]*model.RecentCommunication, len(rows))
	for i, row := range rows {
		out[i] = &model.RecentCommunication{
			CompanyName: row.CompanyName,
			Region:      model.Region(row.Region),
			Details:     row.Details,
			LoggedAt:    row.LoggedAt,
		}
	}
	return out, nil
}

type activeCustomerRow struct {
	CompanyName string `gorm:"column:company_name"`
	Region      string `gorm:"column:region"`
	Count       int64  `gorm:"column:cnt"`
}

// MostActiveCustomers ranks customers by communication count descending,
// ties broken by customer id so the order is stable.
func (r *CustomerRepository) MostActiveCustomers(ctx context.Context, limit int) ([]*model.ActiveCustomer, error) {
	var rows []activeCustomerRow
	err := r.Read(ctx).WithContext(ctx).
		Table("customers AS c").
		Select("c.company_name, c.region, COUNT(cl.id) AS cnt").
		Joins("LEFT JOIN communication_logs AS cl ON cl.customer_id = c.id").
		Group("c.id, c.company_name, c.region").
		Order("cnt DESC, c.id ASC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]*model.ActiveCustomer, len(rows))
	for i, row := range rows {
		out[i] = &model.ActiveCustomer{
			CompanyName:        row.CompanyName,
			Region:             model.Region(row.Region),
			CommunicationCount: row.Count,
		}
	}
	return out, nil
}
