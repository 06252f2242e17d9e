package repository

import "errors"

// ErrNotFound is returned when a row does not exist within the scope
// of the query. Owner-scoped lookups return it both for absent ids and
// for ids owned by someone else; callers cannot tell the two apart.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a uniqueness constraint is violated
// (currently only usernames).
var ErrDuplicate = errors.New("duplicate")
