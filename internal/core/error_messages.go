// Package core provides the view registry and session service.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Users quote the code; support staff look it up here.
//
// # View Errors (VIEW001-VIEW099)
//
//	VIEW001 - View not found: The requested view does not exist
//	          Action: Pick a view from the list
//	          Patterns: "view not found"
//
//	VIEW002 - Duplicate view: Two definitions use the same view key
//	          Action: Give every view definition a unique key
//	          Patterns: "view already registered"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: The table session is no longer open
//	         Action: Reload the view to start a new session
//	         Patterns: "session not found"
//
//	SES002 - System busy: Too many open table sessions
//	         Action: Please wait a moment and try again
//	         Patterns: "too many sessions"
//
//	SES003 - System busy: Too many record loads in progress
//	         Action: Please wait a moment and try again
//	         Patterns: "too many concurrent record loads"
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Records file unreadable
//	         Patterns: "read records file"
//
//	SRC002 - Records file malformed: not a JSON array of objects
//	         Patterns: "decode records"
//
//	SRC003 - Query failed
//	         Patterns: "query records"
//
//	SRC004 - Connection refused: Unable to connect to database
//	         Patterns: "connection refused"
//
// # Definition Errors (DEF001-DEF099)
//
//	DEF001 - Invalid definition
//	         Patterns: "invalid definition"
//
//	DEF002 - Database required: a view queries PostgreSQL but no database is configured
//	         Patterns: "requires a database"
//
//	DEF003 - Unparseable definition file
//	         Patterns: "parse definition"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled. Patterns: "context canceled"
//	REQ002 - Request timed out. Patterns: "context deadline exceeded"
//	REQ003 - Malformed request. Patterns: "bad request"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests. Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or contact support
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so causes (connection refused, timeouts)
// come before the operation that wrapped them (query records).
package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// Order matters: the first match wins.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Causes (SRC004, REQ001-REQ003)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "SRC004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},

	{
		pattern: "bad request",
		msg: UserMessage{
			Message: "The request was malformed",
			Action:  "Check the column and direction and try again",
			Code:    "REQ003",
		},
	},

	// =========================================================================
	// Views and sessions (VIEW001-VIEW002, SES001-SES003)
	// =========================================================================
	{
		pattern: "view not found",
		msg: UserMessage{
			Message: "View not found",
			Action:  "Pick a view from the list",
			Code:    "VIEW001",
		},
	},
	{
		pattern: "view already registered",
		msg: UserMessage{
			Message: "Two view definitions use the same key",
			Action:  "Give every view definition a unique key",
			Code:    "VIEW002",
		},
	},
	{
		pattern: "session not found",
		msg: UserMessage{
			Message: "This table session has expired",
			Action:  "Reload the view to start a new session",
			Code:    "SES001",
		},
	},
	{
		pattern: "too many sessions",
		msg: UserMessage{
			Message: "Too many tables are open right now",
			Action:  "Please wait a moment and try again",
			Code:    "SES002",
		},
	},

	{
		pattern: "too many concurrent record loads",
		msg: UserMessage{
			Message: "The server is busy loading other tables",
			Action:  "Please wait a moment and try again",
			Code:    "SES003",
		},
	},

	// =========================================================================
	// Record sources (SRC001-SRC003)
	// =========================================================================
	{
		pattern: "read records file",
		msg: UserMessage{
			Message: "The records file for this view could not be read",
			Action:  "Check that the file exists and is readable",
			Code:    "SRC001",
		},
	},
	{
		pattern: "decode records",
		msg: UserMessage{
			Message: "The records file for this view is malformed",
			Action:  "The file must hold a JSON array of objects",
			Code:    "SRC002",
		},
	},
	{
		pattern: "query records",
		msg: UserMessage{
			Message: "The records for this view could not be queried",
			Action:  "Check the view's query and the database logs",
			Code:    "SRC003",
		},
	},

	// =========================================================================
	// Definition files (DEF001-DEF003)
	// =========================================================================
	{
		pattern: "invalid definition",
		msg: UserMessage{
			Message: "A view definition is invalid",
			Action:  "Fix the definition file named in the logs",
			Code:    "DEF001",
		},
	},
	{
		pattern: "requires a database",
		msg: UserMessage{
			Message: "A view needs a database but none is configured",
			Action:  "Set DATABASE_URL or remove the view",
			Code:    "DEF002",
		},
	},
	{
		pattern: "parse definition",
		msg: UserMessage{
			Message: "A view definition file could not be parsed",
			Action:  "Check the YAML or HCL syntax of the file named in the logs",
			Code:    "DEF003",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001)
	// =========================================================================
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the generic ERR000 message is returned.
//
// Example:
//
//	_, err := svc.Snapshot(ctx, "stale-id")
//	msg := MapError(err)
//	// msg.Code == "SES001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// Already mapped
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether an error matches a known pattern rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-friendly message.
// The original error is preserved for logging via Unwrap.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
