package sources

import (
	"errors"
	"strings"
	"time"
)

const (
	ExtPlain      = ".log"
	ExtCompressed = ".gz"

	dateTokenLayout = "20060102"
)

var errNoDateToken = errors.New("no date token")

// LogFile is a candidate access log found in the log directory.
type LogFile struct {
	Path       string
	Name       string
	Date       time.Time
	Compressed bool
}

// isCandidate reports whether name carries a recognized log extension.
func isCandidate(name string) bool {
	return strings.HasSuffix(name, ExtPlain) || strings.HasSuffix(name, ExtCompressed)
}

// ParseDateToken extracts the YYYYMMDD date from a name shaped like
// <prefix>.<word>-<YYYYMMDD>.<ext>: the second dot-delimited segment, then its
// second dash-delimited part.
func ParseDateToken(name string) (time.Time, error) {
	segments := strings.Split(name, ".")
	if len(segments) < 2 {
		return time.Time{}, errNoDateToken
	}
	parts := strings.Split(segments[1], "-")
	if len(parts) < 2 {
		return time.Time{}, errNoDateToken
	}
	return time.Parse(dateTokenLayout, parts[1])
}
