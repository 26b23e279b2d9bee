package trackers

import "fmt"

// NetworkError represents a failed tracker list fetch: dial or TLS failures,
// interrupted bodies, and non-2xx responses.
type NetworkError struct {
	Operation  string // e.g. "fetch_trackers"
	URL        string // the requested URL
	StatusCode int    // HTTP status code, 0 for transport failures
	Message    string // human-readable explanation
	Err        error  // underlying error, if any
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("network error during %s of %s (HTTP %d): %s", e.Operation, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("network error during %s of %s: %s", e.Operation, e.URL, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
