package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Title is the first line of the text report
const Title = "Local Glue report"

// Text renders the five-line plain text report
func Text(row Row) string {
	var b strings.Builder
	fmt.Fprintln(&b, Title)
	fmt.Fprintf(&b, "Total records: %d\n", row.Total)
	fmt.Fprintf(&b, "Pending approvals: %d\n", row.Pending)
	fmt.Fprintf(&b, "Approved: %d\n", row.Approved)
	fmt.Fprintf(&b, "Rejected: %d\n", row.Rejected)
	return b.String()
}

// WriteText writes the text report in one call so a failed run never leaves half a report
func WriteText(w io.Writer, row Row) error {
	_, err := io.WriteString(w, Text(row))
	return err
}

type jsonRow struct {
	Row
	Other int64 `json:"other"`
}

// WriteJSON writes the row as an indented JSON object
func WriteJSON(w io.Writer, row Row) error {
	data, err := json.MarshalIndent(jsonRow{Row: row, Other: row.Other()}, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
