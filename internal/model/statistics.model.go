package model

import "time"

// RecentCommunication is one row of the statistics dashboard's latest
// communications feed.
type RecentCommunication struct {
	CompanyName string    `json:"company_name"`
	Region      Region    `json:"region"`
	Details     string    `json:"details"`
	LoggedAt    time.Time `json:"logged_at"`
}

// ActiveCustomer ranks a customer by how many communications it has.
type ActiveCustomer struct {
	CompanyName        string `json:"company_name"`
	Region             Region `json:"region"`
	CommunicationCount int64  `json:"communication_count"`
}

type Statistics struct {
	TotalCustomers           int64                  `json:"total_customers"`
	PerRegionCounts          map[Region]int64       `json:"per_region_counts"`
	MostRecentCommunications []*RecentCommunication `json:"most_recent_communications"`
	MostActiveCustomers      []*ActiveCustomer      `json:"most_active_customers"`
}
