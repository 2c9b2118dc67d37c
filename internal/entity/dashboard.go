// entity/dashboard.go
package entity

import "time"

type Selection struct {
	WebsiteID string `json:"websiteId" binding:"required"`
	Category  string `json:"category"`
}

type DashboardView struct {
	Selection      Selection        `json:"selection"`
	Generation     uint64           `json:"generation,omitempty"`
	Sessions       int              `json:"sessions"`
	Interactions   int              `json:"interactions"`
	DecodeFailures int              `json:"decodeFailures"`
	ClickSeries    AggregatedSeries `json:"clickSeries"`
	ProductSeries  AggregatedSeries `json:"productSeries"`
	Funnel         FunnelMetric     `json:"funnel"`
	BuiltAt        time.Time        `json:"builtAt"`
}

type WebsitesResponse struct {
	Websites []string `json:"websites"`
}
