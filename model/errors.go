package model

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is matched by every MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// MalformedRecordError reports a required field that is missing or
// unusable in a challenge or game record.
type MalformedRecordError struct {
	Kind  string // "challenge" or "game"
	ID    string
	Field string
	Err   error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("%s %s: malformed record: field %q", e.Kind, e.ID, e.Field)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

func malformed(kind, id, field string, err error) error {
	return &MalformedRecordError{Kind: kind, ID: id, Field: field, Err: err}
}
