package members

import "errors"

var (
	// ErrNoStudioAssigned is a broken-account precondition, not user error.
	ErrNoStudioAssigned = errors.New("no studio assigned to user")
	// ErrMemberNotFound deliberately does not distinguish a missing row
	// from a cross-tenant row.
	ErrMemberNotFound = errors.New("member not found or unauthorized")
)
