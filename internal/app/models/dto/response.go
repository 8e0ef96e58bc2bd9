package dto

// ErrorBody is the shape the backend uses for error-status responses.
// Only the message is surfaced to the user.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
