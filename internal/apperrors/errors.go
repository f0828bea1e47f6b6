package apperrors

import "errors"

// ErrValidation indicates that required input was blank, too long or not in an allowed set.
var ErrValidation = errors.New("validation error")

// ErrNotFound indicates that an entry does not exist for the calling owner.
// It is returned both for missing entries and for entries owned by someone else.
var ErrNotFound = errors.New("resource not found")

// ErrPersistence indicates that the underlying store failed.
var ErrPersistence = errors.New("persistence failure")

// ErrUnauthorized indicates that no valid session was presented.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRemoteAnalysis marks a failed remote insight call. It never leaves the insight provider.
var ErrRemoteAnalysis = errors.New("remote analysis failure")
