package model

import (
	"strings"
	"time"
)

type Customer struct {
	ID            int64     `json:"id"`
	Region        Region    `json:"region"`
	CompanyName   string    `json:"company_name"`
	Address       string    `json:"address,omitempty"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Mobile1       string    `json:"mobile1,omitempty"`
	Mobile2       string    `json:"mobile2,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
}

// CustomerSummary is a customer row annotated with its communication
// aggregates, as returned by region listings and search.
type CustomerSummary struct {
	Customer
	CommunicationCount  int64      `json:"communication_count"`
	LastCommunicationAt *time.Time `json:"last_communication_at,omitempty"`
}

// CustomerDetail bundles a customer with its full communication history and
// attached files.
type CustomerDetail struct {
	Customer       Customer            `json:"customer"`
	Communications []*CommunicationLog `json:"communications"`
	Files          []*CustomerFile     `json:"files"`
}

// CustomerCreateRequest is the input for creating a customer. Optional
// InitialCommunication, when non-blank, becomes the customer's first
// communication log in the same transaction.
type CustomerCreateRequest struct {
	Region               Region
	CompanyName          string
	Address              string
	ContactPerson        string
	Mobile1              string
	Mobile2              string
	Phone                string
	InitialCommunication string
}

func (p *CustomerCreateRequest) Validate() error {
	if !p.Region.Valid() {
		return ErrInvalidRegion
	}
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	if p.CompanyName == "" {
		return ErrCompanyNameRequired
	}
	p.InitialCommunication = strings.TrimSpace(p.InitialCommunication)
	return nil
}

// CustomerUpdateRequest is the input for editing a customer. Region and
// CreatedAt are immutable after creation and deliberately absent here.
type CustomerUpdateRequest struct {
	CompanyName   string
	Address       string
	ContactPerson string
	Mobile1       string
	Mobile2       string
	Phone         string
}

func (p *CustomerUpdateRequest) Validate() error {
	p.CompanyName = strings.TrimSpace(p.CompanyName)
	if p.CompanyName == "" {
		return ErrCompanyNameRequired
	}
	return nil
}
