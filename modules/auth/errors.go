package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnauthorized is the root of every authentication failure.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a verified subject lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	// It is used for both unknown accounts and wrong passwords.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = fmt.Errorf("%w: token has expired", ErrUnauthorized)

	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrInvalidRole is returned when a role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")
)

// knownErrors lists the sentinels that survive a trip through a
// request-reply service, most specific first.
var knownErrors = []error{
	ErrExpiredToken,
	ErrInvalidToken,
	ErrInvalidCredentials,
	ErrUserExists,
	ErrUserNotFound,
	ErrInvalidEmail,
	ErrWeakPassword,
	ErrPasswordTooLong,
	ErrInvalidRole,
	ErrForbidden,
}

// DecodeServiceError maps an error returned by a remote auth service call back
// to the matching sentinel. Only the message text crosses the service
// boundary, so matching is done on it. Unknown errors are returned unchanged.
func DecodeServiceError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return known
		}
	}
	return err
}
