package api

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageResponse carries a short status message.
type MessageResponse struct {
	Message string `json:"message"`
}
