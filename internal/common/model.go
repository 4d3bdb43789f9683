// File: internal/common/model.go
package common

import "time"

// User roles recognised across the platform.
const (
	RoleFarmer      = "FARMER"
	RoleSeller      = "SELLER"
	RoleTransporter = "TRANSPORTER"
	RoleAdmin       = "ADMIN"
)

// TimestampNow returns the current UTC time in the RFC3339Nano wire format
// used for created_at fields and journey events.
func TimestampNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Pagination struct for paginated API responses
type Pagination struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination creates a pagination object.
func NewPagination(totalItems int64, page, pageSize int) *Pagination {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	if totalPages == 0 && totalItems > 0 {
		totalPages = 1
	}
	if totalItems == 0 {
		totalPages = 0
	}

	return &Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
