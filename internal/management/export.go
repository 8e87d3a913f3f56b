package management

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

var exportHeader = []string{"Name", "Email", "Total-Min", "Billable-Min", "Expected-Min", "Overtime-Min"}

// WriteCSV renders the per-user breakdown of an overview as CSV, one
// row per user, comma separated, newline delimited.
func WriteCSV(w io.Writer, overview *Overview) error {
	lines := make([]string, 0, len(overview.PerUser)+1)
	lines = append(lines, strings.Join(exportHeader, ","))

	for _, user := range overview.PerUser {
		row := []string{
			escapeCSV(user.Name),
			escapeCSV(user.Email),
			strconv.Itoa(user.TotalMinutes),
			strconv.Itoa(user.BillableMinutes),
			strconv.Itoa(user.ExpectedMinutes),
			strconv.Itoa(user.OvertimeMinutes),
		}
		lines = append(lines, strings.Join(row, ","))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// ExportFilename derives the attachment name from the overview range,
// taking only the date part of each ISO bound.
func ExportFilename(overview *Overview) string {
	return fmt.Sprintf("management-export-%s-%s.csv", overview.RangeStart[:10], overview.RangeEnd[:10])
}

func escapeCSV(value string) string {
	if strings.Contains(value, ",") || strings.Contains(value, `"`) {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}
