package svcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsServiceError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr *ServiceError
		wantOk  bool
	}{
		{
			name:    "nil input",
			err:     nil,
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "regular error",
			err:     errors.New("x"),
			wantErr: nil,
			wantOk:  false,
		},
		{
			name:    "direct ServiceError",
			err:     NewInvalidInputError("PRS_1000", "malformed log line", nil),
			wantErr: NewInvalidInputError("PRS_1000", "malformed log line", nil),
			wantOk:  true,
		},
		{
			name:    "wrapped ServiceError",
			err:     fmt.Errorf("wrap: %w", NewInternalError("RPT_9000", nil)),
			wantErr: NewInternalError("RPT_9000", nil),
			wantOk:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotErr, gotOk := AsServiceError(tt.err)

			assert.Equal(t, tt.wantOk, gotOk, "AsServiceError() ok value mismatch")

			if tt.wantErr == nil {
				assert.Nil(t, gotErr, "AsServiceError() should return nil error")
			} else {
				require.NotNil(t, gotErr, "AsServiceError() should return non-nil error")
				assert.Equal(t, tt.wantErr.Category, gotErr.Category, "Category mismatch")
				assert.Equal(t, tt.wantErr.Code, gotErr.Code, "Code mismatch")
				assert.Equal(t, tt.wantErr.Message, gotErr.Message, "Message mismatch")
			}
		})
	}
}

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain error", err: errors.New("boom"), want: ExitInternal},
		{name: "not found", err: NewNotFoundError("SRC_1000", "missing", nil), want: ExitNotFound},
		{name: "invalid input", err: NewInvalidInputError("SRC_1001", "bad name", nil), want: ExitInvalidInput},
		{name: "invalid argument", err: NewInvalidArgumentError("CFG_1000", "bad config", nil), want: ExitInvalidArgument},
		{name: "conflict", err: fmt.Errorf("wrap: %w", NewResourceConflictError("RPT_1000", "exists", nil)), want: ExitConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeOf(tt.err))
		})
	}
}

func TestServiceError_ErrorIncludesInternalCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewInternalError("RPT_9000", cause)

	assert.Equal(t, "RPT_9000: internal error: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	notFound := NewNotFoundError("SRC_1000", "log directory not found: /var/log/nginx", cause)
	assert.Equal(t, "SRC_1000: log directory not found: /var/log/nginx", notFound.Error())
}
