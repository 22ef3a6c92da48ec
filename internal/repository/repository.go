package repository

import "errors"

var (
	// ErrNotFound is returned when a row looked up by id does not exist.
	ErrNotFound = errors.New("not found")
	// ErrProjectNotFound is returned by writes that reference a missing project.
	ErrProjectNotFound = errors.New("project not found")
)

// PageQuery holds limit/offset pagination parameters.
// Search is an optional case-insensitive name filter; repositories that do not search ignore it.
type PageQuery struct {
	Limit  int
	Offset int
	Search string
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
