package toggl

import "errors"

var (
	// ErrUnauthorized indicates the API token was rejected (401/403).
	ErrUnauthorized = errors.New("toggl token rejected")

	// ErrPaymentRequired indicates the workspace needs a paid plan (402).
	ErrPaymentRequired = errors.New("toggl payment required")

	// ErrRateLimited indicates the API rate limit was hit (429).
	ErrRateLimited = errors.New("toggl rate limit reached")

	// ErrServer indicates a 5xx response from the Toggl API.
	ErrServer = errors.New("toggl server error")

	// ErrNetwork indicates a transport, decode, or otherwise unexpected
	// failure talking to the Toggl API.
	ErrNetwork = errors.New("toggl network error")
)
