// File: internal/booking/model.go
package booking

// Status is the lifecycle status of a transport booking.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusAccepted    Status = "ACCEPTED"
	StatusPickedUp    Status = "PICKED_UP"
	StatusTransported Status = "TRANSPORTED"
	StatusCancelled   Status = "CANCELLED"
	StatusRejected    Status = "REJECTED"
)

// ActiveStatuses are the booking states that count against the
// "one active booking per batch" invariant.
var ActiveStatuses = []Status{StatusPending, StatusAccepted, StatusPickedUp}

// Active reports whether the status counts as an active booking.
func (s Status) Active() bool {
	for _, a := range ActiveStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// CancellationStatus is the sub-state of the cancellation handshake,
// independent of the booking status.
type CancellationStatus string

const (
	CancellationNone    CancellationStatus = ""
	CancellationPending CancellationStatus = "PENDING"
	CancellationAccept  CancellationStatus = "ACCEPT"
	CancellationReject  CancellationStatus = "REJECT"
)

// Booking is the committed transport contract for a batch.
type Booking struct {
	ID                   string             `gorm:"type:varchar(64);primaryKey" json:"id"`
	BatchID              string             `gorm:"type:varchar(64);not null;index" json:"batchId"`
	FarmerID             string             `gorm:"type:varchar(64);not null" json:"farmerId"`
	TransporterID        string             `gorm:"type:varchar(64);not null" json:"transporterId"`
	FarmerDemandedCharge *float64           `json:"farmerDemandedCharge"`
	TransporterCharge    *float64           `json:"transporterCharge"`
	SelectedSellerID     string             `gorm:"type:varchar(64)" json:"selectedSellerId"`
	TransportDate        string             `gorm:"type:varchar(64)" json:"transportDate"`
	Kilometers           *float64           `json:"kilometers"`
	Status               Status             `gorm:"type:varchar(32);not null" json:"status"`
	CancellationStatus   CancellationStatus `gorm:"type:varchar(16)" json:"cancellationStatus,omitempty"`
	CancellationReason   string             `gorm:"type:text" json:"cancellationReason,omitempty"`
	CreatedAt            string             `gorm:"column:created_at;type:varchar(64)" json:"createdAt"`
}

func (Booking) TableName() string {
	return "bookings"
}

// CreateBookingRequest is the payload for creating a booking directly.
// Bookings are normally spawned by transporter request acceptance; this path
// is subject to the same admission check.
type CreateBookingRequest struct {
	BatchID              string   `json:"batchId" binding:"required"`
	FarmerID             string   `json:"farmerId" binding:"required"`
	TransporterID        string   `json:"transporterId" binding:"required"`
	FarmerDemandedCharge *float64 `json:"farmerDemandedCharge"`
	SelectedSellerID     string   `json:"selectedSellerId"`
	TransportDate        string   `json:"transportDate"`
}

// UpdateBookingRequest is a typed partial update: only non-nil fields are
// applied, a merge rather than a replace.
type UpdateBookingRequest struct {
	Status            *Status  `json:"status" binding:"omitempty,oneof=PENDING ACCEPTED PICKED_UP TRANSPORTED CANCELLED REJECTED"`
	TransporterID     *string  `json:"transporterId"`
	TransporterCharge *float64 `json:"transporterCharge"`
	TransportDate     *string  `json:"transportDate"`
	Kilometers        *float64 `json:"kilometers"`
}

// RequestCancellationPayload carries the transporter's cancellation reason.
type RequestCancellationPayload struct {
	Reason string `json:"reason" binding:"required"`
}

// RespondCancellationPayload carries the farmer's decision.
type RespondCancellationPayload struct {
	Action string `json:"action" binding:"required,oneof=ACCEPT REJECT"`
}

// MarkTransportedPayload optionally records the distance driven.
type MarkTransportedPayload struct {
	Kilometers *float64 `json:"kilometers"`
}
