package dto

// APIResponse is the envelope every endpoint returns. DeveloperMessage
// carries diagnostic detail on failures and is never shown to end users.
type APIResponse struct {
	Success          bool        `json:"success"`
	Message          string      `json:"message"`
	DeveloperMessage string      `json:"developerMessage,omitempty"`
	Result           interface{} `json:"result,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(message string, result interface{}) APIResponse {
	return APIResponse{Success: true, Message: message, Result: result}
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(message, devMessage string) APIResponse {
	return APIResponse{Success: false, Message: message, DeveloperMessage: devMessage}
}

// PaginationInfo describes one page of a list result.
type PaginationInfo struct {
	CurrentPage  int   `json:"currentPage"`
	PageSize     int   `json:"pageSize"`
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int   `json:"totalPages"`
	HasMorePages bool  `json:"hasMorePages"`
}

// NewPaginationInfo computes the derived page fields.
func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return PaginationInfo{
		CurrentPage:  page,
		PageSize:     limit,
		TotalItems:   total,
		TotalPages:   totalPages,
		HasMorePages: page < totalPages,
	}
}
