// File: internal/sellerrequest/model.go
package sellerrequest

// Status is the lifecycle status of a seller request. ACCEPTED and REJECTED
// are terminal; accepted requests are retained as history.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// SellerRequest is a seller's bid to resell a batch at a selling price.
type SellerRequest struct {
	ID             string   `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProductID      string   `gorm:"type:varchar(64);not null;index" json:"productId"`
	FarmerID       string   `gorm:"type:varchar(64);not null" json:"farmerId"`
	SellerID       string   `gorm:"type:varchar(64);not null" json:"sellerId"`
	SellerName     string   `gorm:"type:varchar(150)" json:"sellerName"`
	SellerLocation string   `gorm:"type:varchar(255)" json:"sellerLocation"`
	FarmerPrice    *float64 `json:"farmerPrice"`
	SellingPrice   *float64 `json:"sellingPrice"`
	Status         Status   `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt      string   `gorm:"column:created_at;type:varchar(64)" json:"createdAt"`
}

func (SellerRequest) TableName() string {
	return "seller_requests"
}

// CreateSellerRequestRequest is the payload for admitting a seller request.
type CreateSellerRequestRequest struct {
	ProductID      string   `json:"productId" binding:"required"`
	FarmerID       string   `json:"farmerId"`
	SellerID       string   `json:"sellerId" binding:"required"`
	SellerName     string   `json:"sellerName"`
	SellerLocation string   `json:"sellerLocation"`
	FarmerPrice    *float64 `json:"farmerPrice"`
	SellingPrice   *float64 `json:"sellingPrice"`
}

// UpdateStatusRequest carries the farmer's decision on a pending request.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}
