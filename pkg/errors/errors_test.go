// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and category helpers

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "file_not_found_error",
			code:    errors.ErrFileNotFound,
			message: "source missing",
			wantStr: "[FILE_NOT_FOUND] source missing",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "not a number",
			wantStr: "[INVALID_INPUT] not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrOutOfRange, "invalid selection: %v", []int{5, 9})
	if err.Message != "invalid selection: [5 9]" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("disk full")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrBackup, "backup failed")

		if err.Code != errors.ErrBackup {
			t.Errorf("Wrap() code = %v, want %v", err.Code, errors.ErrBackup)
		}

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[BACKUP] backup failed: disk full"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrBackup, "backup failed"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrBackup, "backup of %s failed", "x"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSymlinkCreate, "cannot link").
		WithDetail("source", "/repo/vimrc").
		WithDetail("destination", "/home/u/.vimrc")

	if err.Details["source"] != "/repo/vimrc" {
		t.Errorf("WithDetail() source = %v", err.Details["source"])
	}
	if got := errors.GetErrorDetails(err)["destination"]; got != "/home/u/.vimrc" {
		t.Errorf("GetErrorDetails() destination = %v", got)
	}
	if errors.GetErrorDetails(stderrors.New("plain")) != nil {
		t.Error("GetErrorDetails() should be nil for a plain error")
	}
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrInterrupted, "cancelled at selection")
	err2 := errors.New(errors.ErrInterrupted, "cancelled at confirmation")
	err3 := errors.New(errors.ErrRemove, "cannot remove")

	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should match errors with the same code")
	}
	if stderrors.Is(err1, err3) {
		t.Error("errors.Is() should not match errors with different codes")
	}
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrRemove, "x"), errors.ErrRemove, true},
		{"different_code", errors.New(errors.ErrRemove, "x"), errors.ErrBackup, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileAccess, "denied"), errors.ErrFileAccess, true},
		{"standard_error", stderrors.New("standard error"), errors.ErrRemove, false},
		{"nil_error", nil, errors.ErrRemove, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsErrorCode(tt.err, tt.code); got != tt.expected {
				t.Errorf("IsErrorCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if got := errors.GetErrorCode(errors.New(errors.ErrConfigParse, "bad yaml")); got != errors.ErrConfigParse {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("x")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN", got)
	}
	if got := errors.GetErrorCode(nil); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode(nil) = %v, want UNKNOWN", got)
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		code  errors.ErrorCode
		fatal bool
	}{
		{errors.ErrConfigLoad, true},
		{errors.ErrConfigParse, true},
		{errors.ErrConfigInvalid, true},
		{errors.ErrDependencyMissing, true},
		{errors.ErrBackup, false},
		{errors.ErrSymlinkCreate, false},
		{errors.ErrInvalidInput, false},
		{errors.ErrInterrupted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := errors.IsFatal(errors.New(tt.code, "x")); got != tt.fatal {
				t.Errorf("IsFatal(%s) = %v, want %v", tt.code, got, tt.fatal)
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("permission denied")
	fileErr := errors.Wrap(rootCause, errors.ErrFileAccess, "cannot read manifest")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load manifest")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("top level should have ErrConfigLoad code")
	}
	if !stderrors.Is(configErr, rootCause) {
		t.Error("root cause should be reachable through the chain")
	}
	if !errors.IsInterrupted(errors.Wrap(errors.New(errors.ErrInterrupted, "ctrl-c"), errors.ErrInterrupted, "prompt")) {
		t.Error("IsInterrupted() should see through wrapping")
	}
}

func TestMessage(t *testing.T) {
	inner := errors.New(errors.ErrBackup, "failed to back up ~/.zshrc")
	outer := errors.Wrap(inner, errors.ErrRemove, "cannot replace")

	if got := errors.Message(outer); got != "cannot replace: failed to back up ~/.zshrc" {
		t.Errorf("Message() = %q", got)
	}
	if got := errors.Message(stderrors.New("plain")); got != "plain" {
		t.Errorf("Message(plain) = %q", got)
	}
	if got := errors.Message(nil); got != "" {
		t.Errorf("Message(nil) = %q", got)
	}
}
