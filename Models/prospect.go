package Models

import "time"

// Prospect interest and pipeline status values.
const (
	InterestCycling = "cycling"
	InterestTrail   = "trail"
	InterestBoth    = "both"
)

var ProspectStatuses = []string{"new", "contacted", "thinking", "negotiating", "lost", "closed"}

// Prospect is a prospective client tracked by the CRM screen. Prospects are
// written through single-document store operations, not replace-all saves.
type Prospect struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Club      string    `json:"club"`
	Interest  string    `json:"interest"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	StoreDocID string `json:"store_doc_id"`
}

// ValidProspectStatus reports whether s is a known pipeline status.
func ValidProspectStatus(s string) bool {
	for _, known := range ProspectStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ValidInterest reports whether s is a known interest.
func ValidInterest(s string) bool {
	return s == InterestCycling || s == InterestTrail || s == InterestBoth
}
