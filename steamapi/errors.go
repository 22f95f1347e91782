package steamapi

import "fmt"

// StatusError is returned when the Steam Web API answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}
