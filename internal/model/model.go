package model

import "time"

// TickStatus is the outcome of one health-check observation.
type TickStatus string

const (
	StatusGood    TickStatus = "Good"
	StatusBad     TickStatus = "Bad"
	StatusUnknown TickStatus = "Unknown"
)

func (s TickStatus) Valid() bool {
	switch s {
	case StatusGood, StatusBad, StatusUnknown:
		return true
	}
	return false
}

// Website is a monitored URL owned by a single user. Websites are never
// physically removed; Disabled marks them soft-deleted and every
// user-facing read filters on it.
type Website struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	UserID   string        `json:"userId"`
	Disabled bool          `json:"disabled"`
	Ticks    []WebsiteTick `json:"ticks,omitempty"`
}

// Validator is the entity reporting health checks. The API node uses a
// single shared record with IP "local".
type Validator struct {
	ID        string `json:"id"`
	PublicKey string `json:"publicKey"`
	Location  string `json:"location"`
	IP        string `json:"ip"`
}

// Fixed identity of the per-deployment local validator.
const (
	LocalValidatorIP       = "local"
	LocalValidatorKey      = "local-validator"
	LocalValidatorLocation = "local"
)

// WebsiteTick is one immutable health observation for a website.
type WebsiteTick struct {
	ID          string     `json:"id"`
	WebsiteID   string     `json:"websiteId"`
	ValidatorID string     `json:"validatorId"`
	Status      TickStatus `json:"status"`
	Latency     float64    `json:"latency"`
	CreatedAt   time.Time  `json:"createdAt"`
}
