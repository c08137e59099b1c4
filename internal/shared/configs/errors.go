package configs

import (
	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeConfigInvalid = "CFG_1000"
)

// errConfigInvalid returns an error when the configuration cannot be read or fails validation.
func errConfigInvalid(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeConfigInvalid, msg, cause)
}
