package remote

import "fmt"

// NetworkError means the request never produced a response at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "rental service unreachable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-success response from the rental service.
// Message carries server-supplied text when the body had any.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("rental service error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("rental service error (status %d)", e.Status)
}

// ResponseShapeError is a success response whose payload cannot be
// interpreted.
type ResponseShapeError struct {
	Reason string
}

func (e *ResponseShapeError) Error() string {
	return "unexpected rental service response: " + e.Reason
}
