package services

import (
	"context"
	"strings"
	"time"

	"github.com/salestrack/customer-registry/internal/model"
	"github.com/salestrack/customer-registry/pkg/prom"
)

const statisticsLimit = 10

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	Get(ctx context.Context, id int64) (*model.Customer, error)
	TouchLastUpdated(ctx context.Context, id int64, now time.Time) error
	ListByRegion(ctx context.Context, region model.Region) ([]*model.CustomerSummary, error)
	Search(ctx context.Context, query string) ([]*model.CustomerSummary, error)
	CountAll(ctx context.Context) (int64, error)
	CountByRegion(ctx context.Context) (map[model.Region]int64, error)
	RecentCommunications(ctx context.Context, limit int) ([]*model.RecentCommunication, error)
	MostActiveCustomers(ctx context.Context, limit int) ([]*model.ActiveCustomer, error)
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CommunicationRepository interface {
	Create(ctx context.Context, log *model.CommunicationLog) (*model.CommunicationLog, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.CommunicationLog, error)
}

type FileLister interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]*model.CustomerFile, error)
}

type CustomerService struct {
	customerRepo      CustomerRepository
	communicationRepo CommunicationRepository
	fileRepo          FileLister
}

func NewCustomerService(customerRepo CustomerRepository, communicationRepo CommunicationRepository, fileRepo FileLister) *CustomerService {
	return &CustomerService{
		customerRepo:      customerRepo,
		communicationRepo: communicationRepo,
		fileRepo:          fileRepo,
	}
}

// Create inserts a customer and, when the request carries an initial
// communication, its first log in the same transaction. Either both rows
// land or neither does.
func (s *CustomerService) Create(ctx context.Context, p model.CustomerCreateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var created *model.Customer
	err := s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		c, err := s.customerRepo.Create(ctx, &model.Customer{
			Region:        p.Region,
			CompanyName:   p.CompanyName,
			Address:       strings.TrimSpace(p.Address),
			ContactPerson: strings.TrimSpace(p.ContactPerson),
			Mobile1:       strings.TrimSpace(p.Mobile1),
			Mobile2:       strings.TrimSpace(p.Mobile2),
			Phone:         strings.TrimSpace(p.Phone),
			CreatedAt:     now,
			LastUpdatedAt: now,
		})
		if err != nil {
			return err
		}

		if p.InitialCommunication != "" {
			_, err = s.communicationRepo.Create(ctx, &model.CommunicationLog{
				CustomerID: c.ID,
				Details:    p.InitialCommunication,
				LoggedAt:   now,
			})
			if err != nil {
				return err
			}
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncrCounterVec(prom.SystemCustomers, prom.MetricCustomersCreated, string(created.Region))
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, p model.CustomerUpdateRequest) (*model.Customer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err := s.customerRepo.Update(ctx, &model.Customer{
		ID:            id,
		CompanyName:   p.CompanyName,
		Address:       strings.TrimSpace(p.Address),
		ContactPerson: strings.TrimSpace(p.ContactPerson),
		Mobile1:       strings.TrimSpace(p.Mobile1),
		Mobile2:       strings.TrimSpace(p.Mobile2),
		Phone:         strings.TrimSpace(p.Phone),
		LastUpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	return s.customerRepo.Get(ctx, id)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*model.Customer, error) {
	return s.customerRepo.Get(ctx, id)
}

// Detail aggregates everything a customer page needs: the row itself, the
// full communication history and the attached files.
func (s *CustomerService) Detail(ctx context.Context, id int64) (*model.CustomerDetail, error) {
	customer, err := s.customerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	communications, err := s.communicationRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.CustomerDetail{
		Customer:       *customer,
		Communications: communications,
		Files:          files,
	}, nil
}

func (s *CustomerService) ListByRegion(ctx context.Context, region model.Region) ([]*model.CustomerSummary, error) {
	if !region.Valid() {
		return nil, model.ErrInvalidRegion
	}
	return s.customerRepo.ListByRegion(ctx, region)
}

// Search treats a blank query as "nothing to do", never as "match all".
func (s *CustomerService) Search(ctx context.Context, query string) ([]*model.CustomerSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*model.CustomerSummary{}, nil
	}
	return s.customerRepo.Search(ctx, query)
}

func (s *CustomerService) CountByRegion(ctx context.Context) (map[model.Region]int64, error) {
	return s.customerRepo.CountByRegion(ctx)
}

func (s *CustomerService) Statistics(ctx context.Context) (*model.Statistics, error) {
	total, err := s.customerRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	perRegion, err := s.customerRepo.CountByRegion(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.customerRepo.RecentCommunications(ctx, statisticsLimit)
	if err != nil {
		return nil, err
	}

	active, err := s.customerRepo.MostActiveCustomers(ctx, statisticsLimit)
	if err != nil {
		return nil, err
	}

	return &model.Statistics{
		TotalCustomers:           total,
		PerRegionCounts:          perRegion,
		MostRecentCommunications: recent,
		MostActiveCustomers:      active,
	}, nil
}

// AddCommunication appends a log and bumps the parent customer's
// last_updated as one transactional unit.
func (s *CustomerService) AddCommunication(ctx context.Context, p model.CommunicationCreateRequest) (*model.CommunicationLog, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	var created *model.CommunicationLog
	err := s.customerRepo.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.customerRepo.Get(ctx, p.CustomerID); err != nil {
			return err
		}

		log, err := s.communicationRepo.Create(ctx, &model.CommunicationLog{
			CustomerID: p.CustomerID,
			Details:    p.Details,
			LoggedAt:   now,
		})
		if err != nil {
			return err
		}

		if err := s.customerRepo.TouchLastUpdated(ctx, p.CustomerID, now); err != nil {
			return err
		}

		created = log
		return nil
	})
	if err != nil {
		return nil, err
	}

	prom.IncrCounter(prom.SystemCustomers, prom.MetricCommunicationsLogged)
	return created, nil
}

func (s *CustomerService) ListCommunications(ctx context.Context, customerID int64) ([]*model.CommunicationLog, error) {
	if _, err := s.customerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.communicationRepo.ListByCustomer(ctx, customerID)
}
