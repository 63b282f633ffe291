package domain

import "errors"

var (
	// ErrNotFound means the addressed root row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConstraint wraps storage constraint failures (unique, primary key,
	// foreign key).
	ErrConstraint = errors.New("constraint violation")

	// ErrBadRequest is matched by every failed storage scope.
	ErrBadRequest = errors.New("bad request")
)
