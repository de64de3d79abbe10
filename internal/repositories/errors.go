package repositories

import (
	"github.com/KirkDiggler/pretty-help-bot/internal"
)

type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrRecord RepositoryError = "record error"
)

type RecordError struct {
	internal.ErrorWrapper
}

// NewRecordNotFoundError wraps internal.ErrNotFound so callers can test with errors.Is
func NewRecordNotFoundError(id string) error {
	return &RecordError{
		ErrorWrapper: internal.ErrorWrapper{
			Err:     internal.ErrNotFound,
			Message: string(ErrRecord) + ": " + id,
		},
	}
}
