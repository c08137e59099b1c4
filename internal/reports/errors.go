package reports

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeReportAlreadyExists = "RPT_1000"
	codeTemplateInvalid     = "RPT_1001"

	codeInternalWriteFailed = "RPT_9000"
)

// errReportAlreadyExists returns an error when the report for a day exists and overwriting is off.
func errReportAlreadyExists(key string) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeReportAlreadyExists, fmt.Sprintf("report already exists: %s", key), nil)
}

// errTemplateInvalid returns an error when the report template cannot be used.
func errTemplateInvalid(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidInputError(codeTemplateInvalid, fmt.Sprintf("invalid report template %s: %v", path, cause), cause)
}

// errInternalWriteFailed returns an error when the report cannot be encoded or stored.
func errInternalWriteFailed(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalWriteFailed, fmt.Errorf("writeFailed %s: %w", key, cause))
}
