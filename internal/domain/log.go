package domain

// Log is a single message emitted by a microservice.
type Log struct {
	Microservice string `json:"microservice" db:"microservice"`
	Message      string `json:"message" db:"message"`
}
