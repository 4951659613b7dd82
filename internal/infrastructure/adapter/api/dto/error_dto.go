package dto

// ErrorResponse represents a standardized error response for the API
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FailureResponse is the shop's legacy failure envelope: success=false plus a
// user-facing message, usually riding an HTTP 200
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Failure builds a FailureResponse
func Failure(message string) FailureResponse {
	return FailureResponse{Success: false, Error: message}
}
