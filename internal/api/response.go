package api

// APIError is the error half of the response envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope every endpoint answers with.
type APIResponse struct {
	Data  interface{} `json:"data,omitempty"`
	Error *APIError   `json:"error,omitempty"`
}

func Success(data interface{}) APIResponse {
	return APIResponse{Data: data}
}

func Failure(status int, msg string) APIResponse {
	return APIResponse{Error: &APIError{Code: status, Message: msg}}
}
