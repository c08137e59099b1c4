package parsers

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeMalformedLogLine       = "PRS_1000"
	codeMalformedRatioExceeded = "PRS_1001"

	codeInternalReadFailed = "PRS_9000"
)

const maxQuotedLineLen = 512

var (
	ErrTooFewFields       = errors.New("too few fields")
	ErrInvalidRequestTime = errors.New("invalid request time")
	ErrReaderClosed       = errors.New("log reader closed")
	ErrLineTooLong        = errors.New("line too long")
)

// errMalformedLogLine returns an error for a line violating the access log layout.
func errMalformedLogLine(path string, lineNumber int64, line string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidInputError(codeMalformedLogLine, fmt.Sprintf("malformed log line %s:%d: %v: %q", path, lineNumber, cause, truncateLine(line)), cause)
}

// truncateLine shortens line to at most maxQuotedLineLen bytes without
// splitting a UTF-8 sequence.
func truncateLine(line string) string {
	if len(line) <= maxQuotedLineLen {
		return line
	}
	cut := maxQuotedLineLen
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut] + "..."
}

// ErrMalformedRatioExceeded returns an error when too many lines of a file were skipped.
func ErrMalformedRatioExceeded(path string, ratio, limit float64) *svcerrors.ServiceError {
	return svcerrors.NewInvalidInputError(codeMalformedRatioExceeded, fmt.Sprintf("malformed line ratio %.4f exceeds %.4f in %s", ratio, limit, path), nil)
}

// errInternalReadFailed returns an error when the log file cannot be opened or decoded.
func errInternalReadFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReadFailed, fmt.Errorf("readFailed %s: %w", path, cause))
}
