package models

import "time"

// IntentTiming is how soon a vendor wants to move.
type IntentTiming string

const (
	TimingImmediate IntentTiming = "immediate"
	TimingPlanning  IntentTiming = "planning"
	TimingExploring IntentTiming = "exploring"
)

// Priority buckets a lead score into an outreach tier.
type Priority string

const (
	PriorityHot  Priority = "HOT"
	PriorityWarm Priority = "WARM"
	PriorityCold Priority = "COLD"
)

// StageIntent is the pipeline stage every lead starts in.
const StageIntent = "intent"

// CaptureFields are the structured arguments the model returns through the
// capture_lead tool. BusinessName, Category, ContactName and Email are
// required; the rest are optional.
type CaptureFields struct {
	BusinessName      string       `json:"businessName"`
	Category          string       `json:"category"`
	ContactName       string       `json:"contactName"`
	Email             string       `json:"email"`
	Location          string       `json:"location,omitempty"`
	Website           string       `json:"website,omitempty"`
	IntentTiming      IntentTiming `json:"intentTiming,omitempty"`
	LuxuryPositioning bool         `json:"luxuryPositioning,omitempty"`
}

// Complete reports whether all required capture fields are present.
func (f CaptureFields) Complete() bool {
	return f.BusinessName != "" && f.Category != "" && f.ContactName != "" && f.Email != ""
}

// VendorLead is a scored business inquiry captured during a vendor
// conversation. Created once; never updated by this service.
type VendorLead struct {
	ID                string       `json:"id"`
	BusinessName      string       `json:"business_name"`
	Category          string       `json:"category"`
	Location          string       `json:"location,omitempty"`
	ContactName       string       `json:"contact_name"`
	ContactEmail      string       `json:"contact_email"`
	Website           string       `json:"website,omitempty"`
	LuxuryPositioning bool         `json:"luxury_positioning"`
	IntentTiming      IntentTiming `json:"intent_timing,omitempty"`
	Stage             string       `json:"stage"`
	Score             int          `json:"score"`
	Priority          Priority     `json:"priority"`
	CreatedAt         time.Time    `json:"created_at"`
}

// Signals are the four independent booleans detected from raw message text.
// They feed the score and are not persisted on their own.
type Signals struct {
	IsDecisionMaker    bool `json:"isDecisionMaker"`
	InternationalFocus bool `json:"internationalFocus"`
	EditorialReady     bool `json:"editorialReady"`
	MassMarketExposure bool `json:"massMarketExposure"`
}
