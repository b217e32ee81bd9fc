package http_common

// ErrorResponse is the error body every controller returns.
type ErrorResponse struct {
	Message string `json:"message"`
}
