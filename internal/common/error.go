// Package common defines sentinel errors and small helpers shared by the
// authdemo client and the development API server. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors.
	ErrEmptyTargetUserID = errors.New("user id is empty")

	// Devserver errors, rendered into the {"error": ...} body.
	ErrEmailInUse         = errors.New("email in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrUserNotFound       = errors.New("user not found")
)
