package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrDenied marks a policy rejection: the user is not logged in, and the
	// caller should render a generic "not authorized" page.
	ErrDenied = errors.New("authentication denied")

	// ErrFailed marks an infrastructure fault while authenticating (network,
	// malformed provider response, provider outage).
	ErrFailed = errors.New("authentication failed")

	// ErrInvalidConfig is returned by NewConfig.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// DenialReason says which policy step rejected the login.
type DenialReason string

const (
	ReasonInvalidGrant      DenialReason = "invalid_grant"
	ReasonNoToken           DenialReason = "no_token"
	ReasonMissingUserID     DenialReason = "missing_user_id"
	ReasonEmailDomain       DenialReason = "email_domain"
	ReasonGroupMembership   DenialReason = "group_membership"
	ReasonProjectMembership DenialReason = "project_membership"
)

// DeniedError is a policy rejection. It matches ErrDenied.
type DeniedError struct {
	Reason DenialReason
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrDenied, e.Reason)
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrDenied
}

func deny(reason DenialReason) error {
	return &DeniedError{Reason: reason}
}

func fail(msg string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrFailed, msg, cause)
}

// IsDenied reports whether err is a policy rejection.
func IsDenied(err error) bool {
	return errors.Is(err, ErrDenied)
}

// IsFailed reports whether err is an infrastructure fault.
func IsFailed(err error) bool {
	return errors.Is(err, ErrFailed)
}

// Reason returns the denial reason carried by err, if any.
func Reason(err error) (DenialReason, bool) {
	var d *DeniedError
	if errors.As(err, &d) {
		return d.Reason, true
	}
	return "", false
}
