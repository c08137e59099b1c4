package sources

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeSourceNotFound    = "SRC_1000"
	codeMalformedFilename = "SRC_1001"

	codeInternalSourceListFailed = "SRC_9000"
)

// ErrSourceNotFound returns an error when the log directory or the selected log file is missing.
func ErrSourceNotFound(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeSourceNotFound, fmt.Sprintf("log source not found: %s", path), cause)
}

// errMalformedFilename returns an error when a candidate log name carries no parseable date token.
func errMalformedFilename(dir, name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidInputError(codeMalformedFilename, fmt.Sprintf("malformed log filename %q in %s: expected <prefix>.<word>-YYYYMMDD.<log|gz>", name, dir), cause)
}

// errInternalSourceListFailed returns an error when the log directory cannot be read.
func errInternalSourceListFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalSourceListFailed, fmt.Errorf("sourceListFailed: %w", cause))
}
