package repoerrs

import "errors"

var (
	ErrMalformedPoint = errors.New("log point is missing microservice or message")
	ErrStoreNotReady  = errors.New("log store is not initialized")
)
