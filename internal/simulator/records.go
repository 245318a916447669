package simulator

import (
	"time"

	"github.com/google/uuid"
)

// FailureReason labels why a login attempt failed. Empty means the attempt
// succeeded.
type FailureReason string

const (
	FailureNone          FailureReason = ""
	FailureWrongUsername FailureReason = "error_wrong_username"
	FailureWrongPassword FailureReason = "error_wrong_password"
	FailureAccountLocked FailureReason = "error_account_locked"
)

// AttemptRecord is one labeled login attempt. Records are immutable once
// created and appended to the attempt log in creation order; sorting by
// timestamp happens at export time.
type AttemptRecord struct {
	Time          time.Time     `json:"datetime"`
	SourceIP      string        `json:"source_ip"`
	Username      string        `json:"username"`
	Success       bool          `json:"success"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
}

// CampaignRecord labels one attacker campaign. SourceIP is the first origin
// the attacker generated; when origins vary per target the later ones are
// deliberately not recorded here.
type CampaignRecord struct {
	ID       uuid.UUID `json:"id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	SourceIP string    `json:"source_ip"`
}
