package dto

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// MatchRequest is the body of a match trigger request
type MatchRequest struct {
	Edit bool `json:"edit"`
}

// MatchAccepted is returned when a matching run has been queued
type MatchAccepted struct {
	PaymentID string `json:"payment_id"`
	Edit      bool   `json:"edit"`
	Queued    bool   `json:"queued"`
}
