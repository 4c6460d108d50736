package models

// ConvertRequest is the body of POST /api/convert.
type ConvertRequest struct {
	File string `json:"file"`
}

type ConvertResponse struct {
	JSON string `json:"json"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
