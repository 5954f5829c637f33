package model

import (
	"strings"
	"time"
)

// CommunicationLog is an append-only record of one interaction with a
// customer. Logs are never edited or deleted after insertion.
type CommunicationLog struct {
	ID         int64     `json:"id"`
	CustomerID int64     `json:"customer_id"`
	Details    string    `json:"details"`
	LoggedAt   time.Time `json:"logged_at"`
}

type CommunicationCreateRequest struct {
	CustomerID int64
	Details    string
}

func (p *CommunicationCreateRequest) Validate() error {
	p.Details = strings.TrimSpace(p.Details)
	if p.Details == "" {
		return ErrDetailsRequired
	}
	return nil
}
