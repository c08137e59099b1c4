package reports

import (
	"encoding/json"

	"log-analyzer/internal/models"
)

// MarshalRows encodes rows as a JSON array, keeping their order.
// Zero rows encode as [] rather than null.
func MarshalRows(rows []models.ReportRow) ([]byte, error) {
	if rows == nil {
		rows = []models.ReportRow{}
	}
	return json.Marshal(rows)
}
