package service

import "github.com/taskdo/taskdo-api/internal/redact"

// Failure messages returned inside envelopes. These are part of the
// public contract: clients and tests match on the exact wording, so
// changes here are breaking changes.
const (
	// MsgTaskNotOwned reports a task lookup that found nothing for the
	// requesting user. A missing row and a row owned by someone else are
	// deliberately indistinguishable.
	MsgTaskNotOwned = "Task not found or you don't have permission to modify it"

	// MsgTaskDetailEmpty reports a detail that is present but blank after
	// trimming whitespace.
	MsgTaskDetailEmpty = "Task detail cannot be empty"

	// MsgInvalidStatus reports a status outside the allowed set.
	MsgInvalidStatus = "Invalid status. Must be one of: pending, completed, cancelled"

	// MsgInvalidCreatedDate reports a created_date search parameter that
	// does not parse as a calendar date.
	MsgInvalidCreatedDate = "Invalid created_date. Expected format: YYYY-MM-DD"

	// MsgInvalidCredentials reports a failed authentication attempt. A
	// wrong password and an unknown email produce the same message.
	MsgInvalidCredentials = "Invalid email or password"

	// MsgEmailTaken reports a registration attempt with an email that is
	// already in use.
	MsgEmailTaken = "User with this email already exists"

	// MsgUserNotFound reports a profile lookup for an account that no
	// longer exists.
	MsgUserNotFound = "User not found"
)

// validationFailure builds the envelope for a rejected input. The same
// wording fills both Message and Error so callers see one consistent
// explanation regardless of which field they read.
func validationFailure(msg string) Result {
	return Result{
		Success: false,
		Message: msg,
		Error:   msg,
	}
}

// internalFailure builds the envelope for an unexpected error. The
// underlying error text is redacted before it is exposed, since store
// errors can carry connection strings or SQL fragments.
func internalFailure(msg string, err error) Result {
	return Result{
		Success: false,
		Message: msg,
		Error:   redact.Error(err),
	}
}
