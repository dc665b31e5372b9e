package domain

import "errors"

// ErrUnauthenticated is the single rejection surfaced for unknown usernames,
// wrong passwords and expired, tampered or malformed tokens.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrMalformedHash reports a stored password hash that bcrypt cannot parse.
var ErrMalformedHash = errors.New("malformed password hash")

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidInput = errors.New("invalid input")
)
