package parsers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"log-analyzer/internal/models"
)

// pathFieldIndex is the position of the request path in a whitespace split
// access log line:
//
//	1.196.116.32 - - [29/Jun/2017:03:50:22 +0300] "GET /api/v2/banner/25019354 HTTP/1.1" ... 0.390
//	0            1 2 3                     4      5    6
const pathFieldIndex = 6

// ParseLine extracts the request path and the trailing request time from one
// access log line.
func ParseLine(line string) (models.LogEntry, error) {
	fields := strings.Fields(line)
	if len(fields) <= pathFieldIndex {
		return models.LogEntry{}, fmt.Errorf("%w: got %d, want at least %d", ErrTooFewFields, len(fields), pathFieldIndex+1)
	}

	last := fields[len(fields)-1]
	requestTime, err := strconv.ParseFloat(last, 64)
	if err != nil || math.IsNaN(requestTime) || math.IsInf(requestTime, 0) || requestTime < 0 {
		return models.LogEntry{}, fmt.Errorf("%w: %q", ErrInvalidRequestTime, last)
	}

	return models.LogEntry{
		Path:        fields[pathFieldIndex],
		RequestTime: requestTime,
	}, nil
}
