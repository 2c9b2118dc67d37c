// entity/summary.go
package entity

import "time"

type SummaryRequest struct {
	WebsiteID string `json:"websiteId" binding:"required"`
	Category  string `json:"category"`
}

type SummaryResponse struct {
	WebsiteID string    `json:"websiteId"`
	Summary   string    `json:"summary"`
	Method    string    `json:"method"` // "ai" или "fallback"
	Model     string    `json:"model,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
