package app

import "errors"

// Typed errors for the harness app layer. ErrSetup marks failures that must
// abort the whole run; the others describe what went wrong underneath.
var (
	// ErrSetup indicates the run could not get past authentication.
	ErrSetup = errors.New("setup failed")
	// ErrMissingToken indicates login succeeded without yielding an access token, or an empty token reached an authenticated call.
	ErrMissingToken = errors.New("missing access token")
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("transport error")
	// ErrStatus indicates the API answered with a non-success status.
	ErrStatus = errors.New("unexpected status")
	// ErrDecode indicates a response body that is not the expected JSON.
	ErrDecode = errors.New("malformed response body")
	// ErrDatabase indicates a failure persisting or reading run reports.
	ErrDatabase = errors.New("database error")
)
