// File: internal/product/model.go
package product

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the lifecycle status of a product batch.
type Status string

const (
	StatusCreated         Status = "CREATED"
	StatusSellerAccepted  Status = "SELLER_ACCEPTED"
	StatusBookedTransport Status = "BOOKED_TRANSPORT"
	StatusInTransit       Status = "IN_TRANSIT"
	StatusAtSeller        Status = "AT_SELLER"
	StatusSold            Status = "SOLD"
	StatusTransported     Status = "TRANSPORTED"
)

// transportGated lists statuses under which a batch may not receive a new
// transporter request: it is already booked, moving, or done.
var transportGated = map[Status]bool{
	StatusBookedTransport: true,
	StatusInTransit:       true,
	StatusAtSeller:        true,
	StatusSold:            true,
	StatusTransported:     true,
}

// TransportClosed reports whether the status blocks new transporter requests.
func (s Status) TransportClosed() bool {
	return transportGated[s]
}

// JourneyEvent is one entry in a batch's audit trail.
type JourneyEvent struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// Journey is the ordered, append-only sequence of journey events. It is
// persisted as a JSON array serialized into a TEXT column, and must
// round-trip exactly through update cycles.
type Journey []JourneyEvent

// Value implements the driver.Valuer interface for Journey.
func (j Journey) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize journey: %w", err)
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface for Journey.
func (j *Journey) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return errors.New("failed to scan journey: unsupported column type")
	}
	if len(raw) == 0 {
		*j = nil
		return nil
	}
	return json.Unmarshal(raw, j)
}

// Append returns the journey with one more event. Existing entries are never
// mutated.
func (j Journey) Append(event JourneyEvent) Journey {
	return append(j, event)
}

// Product represents one farmer's produce batch. Its ID doubles as the
// batchId referenced by requests and bookings.
type Product struct {
	ID                 string   `gorm:"type:varchar(64);primaryKey" json:"id"`
	FarmerID           string   `gorm:"type:varchar(64);not null;index" json:"farmerId"`
	FarmerName         string   `gorm:"type:varchar(150)" json:"farmerName"`
	ProductName        string   `gorm:"type:varchar(150);not null" json:"productName"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `gorm:"type:varchar(30)" json:"unit"`
	ProductionLocation string   `gorm:"type:varchar(255)" json:"productionLocation"`
	QRCode             string   `gorm:"type:varchar(150)" json:"qrCode"`
	Status             Status   `gorm:"type:varchar(32);not null;default:'CREATED'" json:"status"`
	CurrentLocation    string   `gorm:"type:varchar(255)" json:"currentLocation"`
	FarmerPrice        *float64 `json:"farmerPrice"`
	SellerPrice        *float64 `json:"sellerPrice"`
	SellerID           string   `gorm:"type:varchar(64)" json:"sellerId"`
	SellerName         string   `gorm:"type:varchar(150)" json:"sellerName"`
	SellerLocation     string   `gorm:"type:varchar(255)" json:"sellerLocation"`
	TransporterID      string   `gorm:"type:varchar(64)" json:"transporterId"`
	TransporterName    string   `gorm:"type:varchar(150)" json:"transporterName"`
	TransporterCharge  *float64 `json:"transporterCharge"`
	Journey            Journey  `gorm:"type:text" json:"journey"`
	CreatedAt          string   `gorm:"column:created_at;type:varchar(64)" json:"createdAt"`
}

func (Product) TableName() string {
	return "products"
}

// HasAcceptedSeller reports whether a seller has been accepted for this batch.
func (p *Product) HasAcceptedSeller() bool {
	return p.SellerID != ""
}

// CreateProductRequest is the payload for creating a batch.
type CreateProductRequest struct {
	FarmerID           string   `json:"farmerId" binding:"required"`
	FarmerName         string   `json:"farmerName"`
	ProductName        string   `json:"productName" binding:"required"`
	Quantity           float64  `json:"quantity" binding:"gt=0"`
	Unit               string   `json:"unit"`
	ProductionLocation string   `json:"productionLocation"`
	CurrentLocation    string   `json:"currentLocation"`
	FarmerPrice        *float64 `json:"farmerPrice"`
}

// UpdateProductRequest is a typed partial update: only non-nil fields are
// applied. This replaces the original's reflective map merge at the boundary.
type UpdateProductRequest struct {
	ProductName        *string  `json:"productName"`
	Quantity           *float64 `json:"quantity"`
	Unit               *string  `json:"unit"`
	ProductionLocation *string  `json:"productionLocation"`
	CurrentLocation    *string  `json:"currentLocation"`
	Status             *Status  `json:"status"`
	SellerPrice        *float64 `json:"sellerPrice"`
}
