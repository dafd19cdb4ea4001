package dto

// SuccessResponse represents a bare message response.
type SuccessResponse struct {
	Message string `json:"message"`
}
