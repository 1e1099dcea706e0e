package validators

import (
	"errors"

	"github.com/Camping-RSO/camping-logs-ms/internal/domain"
)

var (
	ErrMissingMicroservice = errors.New("argument microservice must be specified")
	ErrMissingMessage      = errors.New("argument message must be specified")
)

// NewLog builds a Log from optional transport arguments. Both must be present,
// empty strings are accepted.
func NewLog(microservice, message *string) (*domain.Log, error) {
	if microservice == nil {
		return nil, ErrMissingMicroservice
	}
	if message == nil {
		return nil, ErrMissingMessage
	}
	return &domain.Log{
		Microservice: *microservice,
		Message:      *message,
	}, nil
}
