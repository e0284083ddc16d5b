package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecordStatus is the lifecycle state of a Record
type RecordStatus string

const (
	RecordStatusDraft           RecordStatus = "DRAFT"
	RecordStatusPendingApproval RecordStatus = "PENDING_APPROVAL"
	RecordStatusApproved        RecordStatus = "APPROVED"
	RecordStatusRejected        RecordStatus = "REJECTED"
)

// RecordStatuses lists every status the approval workflow produces
var RecordStatuses = []RecordStatus{
	RecordStatusDraft,
	RecordStatusPendingApproval,
	RecordStatusApproved,
	RecordStatusRejected,
}

var recordStatusAliases = map[string]RecordStatus{
	"PENDING": RecordStatusPendingApproval,
}

// ParseRecordStatus resolves aliases; ok is false for values outside RecordStatuses
func ParseRecordStatus(s string) (status RecordStatus, ok bool) {
	if alias, found := recordStatusAliases[s]; found {
		return alias, true
	}
	for _, known := range RecordStatuses {
		if string(known) == s {
			return known, true
		}
	}
	return RecordStatus(s), false
}

// Record is a row of the approval workflow's records table.
// The report tool only reads it; the model exists for fixtures.
type Record struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	EntityTypeID   string         `gorm:"index" json:"entityTypeId"`
	OrganizationID string         `gorm:"index" json:"organizationId"`
	CreatedByID    string         `json:"createdById"`
	Data           datatypes.JSON `json:"data"`
	Status         RecordStatus   `gorm:"type:varchar(32);not null;index" json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// TableName specifies the table name for Record model
func (Record) TableName() string {
	return "records"
}

// BeforeCreate assigns an ID and normalizes aliased statuses
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = RecordStatusDraft
	}
	if status, ok := ParseRecordStatus(string(r.Status)); ok {
		r.Status = status
	}
	return nil
}
