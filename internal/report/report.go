// Package report computes and renders the record status summary.
package report

import (
	"context"
	"fmt"

	"github.com/xelth-com/gluereport/internal/models"
	"gorm.io/gorm"
)

// Row holds the four counts of one report run
type Row struct {
	Total    int64 `gorm:"column:total_records" json:"total_records"`
	Pending  int64 `gorm:"column:pending" json:"pending"`
	Approved int64 `gorm:"column:approved" json:"approved"`
	Rejected int64 `gorm:"column:rejected" json:"rejected"`
}

// Other is the number of records in statuses that have no bucket of their own
func (r Row) Other() int64 {
	return r.Total - r.Pending - r.Approved - r.Rejected
}

// Validate checks that counts are non-negative and the buckets fit in the total
func (r Row) Validate() error {
	if r.Total < 0 || r.Pending < 0 || r.Approved < 0 || r.Rejected < 0 {
		return fmt.Errorf("negative count in %+v", r)
	}
	if r.Other() < 0 {
		return fmt.Errorf("bucket counts exceed total in %+v", r)
	}
	return nil
}

// QueryError wraps any failure while running the summary query
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("report %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

var summaryQuery = fmt.Sprintf(`
SELECT
  (SELECT COUNT(*) FROM records) AS total_records,
  (SELECT COUNT(*) FROM records WHERE status = '%s') AS pending,
  (SELECT COUNT(*) FROM records WHERE status = '%s') AS approved,
  (SELECT COUNT(*) FROM records WHERE status = '%s') AS rejected
`, models.RecordStatusPendingApproval, models.RecordStatusApproved, models.RecordStatusRejected)

// Fetch runs the summary query and returns its single row
func Fetch(ctx context.Context, db *gorm.DB) (Row, error) {
	var row Row
	result := db.WithContext(ctx).Raw(summaryQuery).Scan(&row)
	if result.Error != nil {
		return Row{}, &QueryError{Op: "query", Err: result.Error}
	}
	if result.RowsAffected != 1 {
		return Row{}, &QueryError{Op: "fetch", Err: fmt.Errorf("expected 1 row, got %d", result.RowsAffected)}
	}
	if err := row.Validate(); err != nil {
		return Row{}, &QueryError{Op: "validate", Err: err}
	}
	return row, nil
}
