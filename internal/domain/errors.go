package domain

import "errors"

// ErrDraftIncomplete is returned by ProductDraft.Validate when any of the
// three required form fields is empty.
var ErrDraftIncomplete = errors.New("all fields must be filled in")
