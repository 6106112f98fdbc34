package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "unknown view",
			err:         fmt.Errorf("%w: nope", ErrViewNotFound),
			wantCode:    "VIEW001",
			wantMessage: "View not found",
		},
		{
			name:        "expired session",
			err:         fmt.Errorf("%w: 1234", ErrSessionNotFound),
			wantCode:    "SES001",
			wantMessage: "This table session has expired",
		},
		{
			name:        "session limit",
			err:         fmt.Errorf("%w: limit is 3", ErrTooManySessions),
			wantCode:    "SES002",
			wantMessage: "Too many tables are open right now",
		},
		{
			name:        "cause wins over wrapping operation",
			err:         errors.New("load records for view x: query records: dial tcp: connection refused"),
			wantCode:    "SRC004",
			wantMessage: "Unable to connect to database",
		},
		{
			name:        "timeout while loading",
			err:         fmt.Errorf("load records for view x: %w", context.DeadlineExceeded),
			wantCode:    "REQ002",
			wantMessage: "Request timed out",
		},
		{
			name:        "malformed records file",
			err:         errors.New("views/x.json: decode records: unexpected EOF"),
			wantCode:    "SRC002",
			wantMessage: "The records file for this view is malformed",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("VIEW NOT FOUND"),
			wantCode:    "VIEW001",
			wantMessage: "View not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	result := FormatUserError(ErrSessionNotFound)

	expected := "This table session has expired (Code: SES001). Reload the view to start a new session"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}

	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error is not user facing", err: nil, want: false},
		{name: "known error is user facing", err: ErrViewNotFound, want: true},
		{name: "unknown error is not user facing", err: errors.New("random internal error xyz"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUserFacing(tt.err); got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := fmt.Errorf("%w: abc", ErrSessionNotFound)
		userErr := NewUserError(techErr)

		if userErr.Error() != "This table session has expired" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}
		if !errors.Is(userErr, ErrSessionNotFound) {
			t.Error("Unwrap() should return original error")
		}
	})

	t.Run("mapping a user error keeps its message", func(t *testing.T) {
		userErr := NewUserError(fmt.Errorf("load records for view x: %w", ErrTooManyLoads))

		if got := MapError(userErr).Code; got != "SES003" {
			t.Errorf("MapError(UserError).Code = %q, want SES003", got)
		}
		want := "The server is busy loading other tables (Code: SES003). Please wait a moment and try again"
		if got := FormatUserError(userErr); got != want {
			t.Errorf("FormatUserError(UserError) = %q, want %q", got, want)
		}
	})
}
