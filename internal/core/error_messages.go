package core

// error_messages.go maps technical errors to user-facing messages with codes
// that users can quote to support.
//
//	DB001   - Unable to connect to database       ("connection refused")
//	DB002   - Database connection was interrupted ("connection reset")
//	DB003   - Operation timed out                 ("timeout")
//	FILE001 - File exceeds maximum size limit     ("file too large")
//	FILE002 - File is not valid UTF-8 text        ("encoding error")
//	FILE003 - No file was selected                ("no file provided")
//	FILE004 - Uploaded form is invalid            ("invalid form")
//	ANL001  - Saved analysis not found            ("analysis not found")
//	ANL002  - Analysis name missing               ("name is required")
//	SRC001  - Unknown data source                 ("unknown data source")
//	SET001  - Settings rejected                   ("invalid settings")
//	REQ001  - Request cancelled                   ("context canceled")
//	REQ002  - Request timed out                   ("context deadline exceeded")
//	RATE001 - Too many requests                   ("rate limit")
//	ERR000  - Fallback for anything else

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is matched case-insensitively with strings.Contains.
// The first match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "REQ002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB003",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Export fewer records or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Export fewer records or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File is not valid UTF-8 text",
			Action:  "Save the export as UTF-8 CSV",
			Code:    "FILE002",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a contacts CSV to analyze",
			Code:    "FILE003",
		},
	},
	{
		pattern: "invalid form",
		msg: UserMessage{
			Message: "Uploaded form is invalid",
			Action:  "Submit the file as multipart/form-data",
			Code:    "FILE004",
		},
	},
	{
		pattern: "analysis not found",
		msg: UserMessage{
			Message: "Saved analysis not found",
			Action:  "It may have been deleted. Refresh the list of analyses",
			Code:    "ANL001",
		},
	},
	{
		pattern: "name is required",
		msg: UserMessage{
			Message: "Analysis name is missing",
			Action:  "Give the analysis a name before saving",
			Code:    "ANL002",
		},
	},
	{
		pattern: "unknown data source",
		msg: UserMessage{
			Message: "Unknown data source",
			Action:  "Choose the demo source or upload a CSV",
			Code:    "SRC001",
		},
	},
	{
		pattern: "invalid settings",
		msg: UserMessage{
			Message: "Settings were rejected",
			Action:  "Check the values and try again",
			Code:    "SET001",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "Request body could not be read",
			Action:  "Send a valid JSON object",
			Code:    "REQ003",
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
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
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

// IsUserFacing reports whether err matches a known pattern rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
