package dto

import "time"

// APIResponse is the standard envelope returned by every endpoint
type APIResponse struct {
	Success   bool        `json:"success" example:"true"`
	Message   string      `json:"message,omitempty" example:"Operation completed successfully"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewSuccessResponse creates a success envelope with the given payload
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewErrorAPIResponse creates a failure envelope carrying error details
func NewErrorAPIResponse(errDetail interface{}) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     errDetail,
		Timestamp: time.Now(),
	}
}

// PaginationMeta describes the page window of a list response
type PaginationMeta struct {
	Page       int   `json:"page" example:"1"`
	PageSize   int   `json:"pageSize" example:"20"`
	TotalItems int64 `json:"totalItems" example:"42"`
	TotalPages int   `json:"totalPages" example:"3"`
}

// PagedResponse wraps a list payload with pagination metadata
type PagedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewPagedResponse computes the page count and wraps the items
func NewPagedResponse(items interface{}, page, pageSize int, totalItems int64) PagedResponse {
	totalPages := int(totalItems) / pageSize
	if int(totalItems)%pageSize > 0 {
		totalPages++
	}
	return PagedResponse{
		Items: items,
		Pagination: PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: totalItems,
			TotalPages: totalPages,
		},
	}
}
