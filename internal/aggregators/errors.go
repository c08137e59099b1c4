package aggregators

import (
	"fmt"

	"log-analyzer/internal/shared/svcerrors"
)

const (
	codeInternalSourceFailed = "AGG_9000"
	codeAggregationCancelled = "AGG_9001"
)

// errInternalSourceFailed wraps a source error that is not already a ServiceError.
func errInternalSourceFailed(cause error) *svcerrors.ServiceError {
	if svcErr, ok := svcerrors.AsServiceError(cause); ok {
		return svcErr
	}
	return svcerrors.NewInternalError(codeInternalSourceFailed, fmt.Errorf("sourceFailed: %w", cause))
}

// errAggregationCancelled returns an error when the run context ends mid-aggregation.
func errAggregationCancelled(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeAggregationCancelled, fmt.Errorf("aggregationCancelled: %w", cause))
}
