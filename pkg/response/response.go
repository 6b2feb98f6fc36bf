// Package response defines the JSON envelope every handler returns.
package response

// Response is the transport envelope: success with data, or an error
// descriptor, never both.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
}

// ErrorData describes a failed request
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success wraps data in a successful envelope
func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// Error builds a failure envelope
func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}
