package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NewAuditFields stamps both fields with at, in UTC.
func NewAuditFields(at time.Time) AuditFields {
	at = at.UTC()
	return AuditFields{CreatedAt: at, LastUpdatedAt: at}
}

// Touch records a modification at the given time.
func (a *AuditFields) Touch(at time.Time) {
	a.LastUpdatedAt = at.UTC()
}
