// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrCarModelNotFound signals that a lookup matched no live
// row (missing or soft-deleted), while ErrUsernameExists signals a
// uniqueness violation on user creation.
package repository

import "errors"

// ErrCarModelNotFound is returned when a car model lookup yields no
// live rows. Handlers should translate this into an HTTP 404 response.
var ErrCarModelNotFound = errors.New("car model not found")

// ErrPartNotFound is returned when a part lookup yields no live rows.
var ErrPartNotFound = errors.New("part not found")

// ErrUserNotFound is returned when a user lookup yields no live rows.
var ErrUserNotFound = errors.New("user not found")

// ErrGroupNotFound is returned when a group lookup yields no rows.
var ErrGroupNotFound = errors.New("group not found")

// ErrUsernameExists is returned when user creation collides with an
// existing username. Handlers should translate this into HTTP 409.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned when user creation collides with an
// existing email address. Handlers should translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
