// File: internal/transportrequest/model.go
package transportrequest

// Status is the lifecycle status of a transporter request. ACCEPTED and
// REJECTED are terminal; accepted requests are retained as history.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// TransporterRequest is a transporter's bid to move a batch to its accepted
// seller. SellerID and SellerLocation are snapshots taken from the product at
// admission time, not live references.
type TransporterRequest struct {
	ID                   string   `gorm:"type:varchar(64);primaryKey" json:"id"`
	ProductID            string   `gorm:"type:varchar(64);not null;index" json:"productId"`
	FarmerID             string   `gorm:"type:varchar(64);not null" json:"farmerId"`
	TransporterID        string   `gorm:"type:varchar(64);not null" json:"transporterId"`
	SellerID             string   `gorm:"type:varchar(64)" json:"sellerId"`
	SellerLocation       string   `gorm:"type:varchar(255)" json:"sellerLocation"`
	FarmerDemandedCharge *float64 `json:"farmerDemandedCharge"`
	TransportDate        string   `gorm:"type:varchar(64)" json:"transportDate"`
	Status               Status   `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt            string   `gorm:"column:created_at;type:varchar(64)" json:"createdAt"`
}

func (TransporterRequest) TableName() string {
	return "transporter_requests"
}

// CreateTransporterRequestRequest is the payload for admitting a transporter
// request.
type CreateTransporterRequestRequest struct {
	ProductID            string   `json:"productId" binding:"required"`
	FarmerID             string   `json:"farmerId"`
	TransporterID        string   `json:"transporterId" binding:"required"`
	FarmerDemandedCharge *float64 `json:"farmerDemandedCharge"`
	TransportDate        string   `json:"transportDate"`
}

// UpdateStatusRequest carries the farmer's decision on a pending request.
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}
