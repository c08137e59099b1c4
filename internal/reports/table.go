package reports

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"log-analyzer/internal/models"

	"github.com/olekukonko/tablewriter"
)

var tableHeader = []string{"URL", "COUNT", "COUNT %", "TIME SUM", "TIME %", "TIME AVG", "TIME MAX", "TIME MED"}

// WriteTable prints the top rows by time_sum as a text table. top <= 0 prints every row.
func WriteTable(w io.Writer, rows []models.ReportRow, top int) error {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b models.ReportRow) int {
		return cmp.Compare(b.TimeSum, a.TimeSum)
	})
	if top > 0 && top < len(sorted) {
		sorted = sorted[:top]
	}

	table := tablewriter.NewTable(w, tablewriter.WithHeader(tableHeader))
	for _, row := range sorted {
		err := table.Append([]string{
			row.URL,
			strconv.FormatInt(row.Count, 10),
			fmt.Sprintf("%.2f", row.CountPerc*100),
			fmt.Sprintf("%.3f", row.TimeSum),
			fmt.Sprintf("%.2f", row.TimePerc*100),
			fmt.Sprintf("%.3f", row.TimeAvg),
			fmt.Sprintf("%.3f", row.TimeMax),
			fmt.Sprintf("%.3f", row.TimeMed),
		})
		if err != nil {
			return err
		}
	}
	return table.Render()
}
