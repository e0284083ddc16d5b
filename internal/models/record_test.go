package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   RecordStatus
		wantOK bool
	}{
		{"DRAFT", RecordStatusDraft, true},
		{"PENDING_APPROVAL", RecordStatusPendingApproval, true},
		{"PENDING", RecordStatusPendingApproval, true},
		{"APPROVED", RecordStatusApproved, true},
		{"REJECTED", RecordStatusRejected, true},
		{"ARCHIVED", RecordStatus("ARCHIVED"), false},
		{"approved", RecordStatus("approved"), false},
	}
	for _, tt := range tests {
		got, ok := ParseRecordStatus(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestRecordBeforeCreate(t *testing.T) {
	r := &Record{Status: "PENDING"}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.Len(t, r.ID, 36)
	assert.Equal(t, RecordStatusPendingApproval, r.Status)

	r = &Record{ID: "fixed"}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, "fixed", r.ID)
	assert.Equal(t, RecordStatusDraft, r.Status)

	// Unknown statuses are stored verbatim.
	r = &Record{Status: "ARCHIVED"}
	assert.NoError(t, r.BeforeCreate(nil))
	assert.Equal(t, RecordStatus("ARCHIVED"), r.Status)
}
