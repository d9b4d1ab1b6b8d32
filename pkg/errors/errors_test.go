// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/icicle/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_installed_error",
			code:    errors.ErrNotInstalled,
			message: "'2023-01-05' is not installed",
			wantStr: "[NOT_INSTALLED] '2023-01-05' is not installed",
		},
		{
			name:    "config_error",
			code:    errors.ErrConfig,
			message: "ICICLE_HOME not set",
			wantStr: "[CONFIG] ICICLE_HOME not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrMissingVersion, "create a '%s' file", ".icicle-toolchain")
	assert.Equal(t, "create a '.icicle-toolchain' file", err.Message)
}

func TestWrap(t *testing.T) {
	base := stderrors.New("permission denied")

	err := errors.Wrap(base, errors.ErrLink, "failed to create symlink")
	require.NotNil(t, err)
	assert.Equal(t, "[LINK_ERROR] failed to create symlink: permission denied", err.Error())
	assert.Same(t, base, stderrors.Unwrap(err))

	assert.Nil(t, errors.Wrap(nil, errors.ErrLink, "nothing"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrLink, "nothing %d", 1))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrNotInstalled, "missing").
		WithDetail(errors.DetailVersion, "2023-06-10").
		WithDetails(map[string]interface{}{errors.DetailPath: "/tmp/x"})

	assert.Equal(t, "2023-06-10", err.Details[errors.DetailVersion])
	assert.Equal(t, "/tmp/x", err.Details[errors.DetailPath])

	var empty errors.IcicleError
	empty.WithDetail("k", "v")
	assert.Equal(t, "v", empty.Details["k"])
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", errors.New(errors.ErrDanglingAlias, "dangling"))

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrDanglingAlias, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrLink, "")))
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code errors.ErrorCode
		want bool
	}{
		{"direct_match", errors.New(errors.ErrMissingVersion, "x"), errors.ErrMissingVersion, true},
		{"wrapped_match", fmt.Errorf("ctx: %w", errors.New(errors.ErrLink, "x")), errors.ErrLink, true},
		{"different_code", errors.New(errors.ErrLink, "x"), errors.ErrIO, false},
		{"plain_error", stderrors.New("x"), errors.ErrLink, false},
		{"nil_error", nil, errors.ErrLink, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrConfig, errors.GetErrorCode(errors.New(errors.ErrConfig, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("x")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("x")))
}

func TestIsRetryable(t *testing.T) {
	retryable := errors.New(errors.ErrLink, "absent").WithDetail(errors.DetailRetryable, true)
	assert.True(t, errors.IsRetryable(fmt.Errorf("wrapped: %w", retryable)))
	assert.False(t, errors.IsRetryable(errors.New(errors.ErrLink, "fatal")))
	assert.False(t, errors.IsRetryable(stderrors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	inner := errors.New(errors.ErrIO, "download failed")
	outer := errors.Wrap(inner, errors.ErrNotInstalled, "install failed")

	assert.Equal(t, "install failed: download failed", errors.UserMessage(outer))
	assert.Equal(t, "plain", errors.UserMessage(stderrors.New("plain")))
	assert.Equal(t, "ctx: [LINK_ERROR] x", errors.UserMessage(fmt.Errorf("ctx: %w", errors.New(errors.ErrLink, "x"))))
}
