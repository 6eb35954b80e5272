package errors

// Kind tags which of the three error variants an Error is.
type Kind int

const (
	// internal failure, default status 500
	KindServer Kind = iota
	// caller fault, status chosen by the caller
	KindClient
	// a response was already sent by other means; emit nothing further
	KindNoResponse
)

func (k Kind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	case KindNoResponse:
		return "no_response"
	default:
		return "unknown"
	}
}

// Option configures an Error during construction.
type Option func(*Error)

// ErrorInfo is the outcome of classifying a foreign error.
type ErrorInfo struct {
	category  string
	sanitized string
}
