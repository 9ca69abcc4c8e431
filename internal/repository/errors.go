package repository

import "errors"

// ErrNotFound is returned when a conversation id does not exist in the store.
// The store layer translates it into the domain-level errors.ErrNotFound so that
// callers never depend on a particular backend.
var ErrNotFound = errors.New("repository: not found")
