package repository

import "errors"

// ErrConflict reports that a document with the same key is already stored.
// Services translate it into their own duplicate errors.
var ErrConflict = errors.New("document already exists")

const uniqueViolation = "23505"
