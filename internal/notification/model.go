// File: internal/notification/model.go
package notification

// Type classifies a notification.
type Type string

const (
	TypeInfo                Type = "INFO"
	TypeAlert               Type = "ALERT"
	TypeCancellationRequest Type = "CANCELLATION_REQUEST"
)

// Status is the read/action state of a notification.
type Status string

const (
	StatusUnread         Status = "UNREAD"
	StatusRead           Status = "READ"
	StatusActionRequired Status = "ACTION_REQUIRED"
	StatusActionTaken    Status = "ACTION_TAKEN"
)

// ActionStatus tracks the outcome of an action-bearing notification.
type ActionStatus string

const (
	ActionPending ActionStatus = "PENDING"
	ActionAccept  ActionStatus = "ACCEPT"
	ActionReject  ActionStatus = "REJECT"
)

// Notification is a polled, store-local message to a user. RelatedEntityID is
// a weak back-reference to a booking or product, never an ownership edge.
type Notification struct {
	ID              string       `gorm:"type:varchar(64);primaryKey" json:"id"`
	UserID          string       `gorm:"type:varchar(64);not null;index:idx_notification_user" json:"userId"`
	Message         string       `gorm:"type:text;not null" json:"message"`
	Type            Type         `gorm:"type:varchar(32);not null" json:"type"`
	RelatedEntityID string       `gorm:"type:varchar(64);index" json:"relatedEntityId"`
	Status          Status       `gorm:"type:varchar(32);not null;default:'UNREAD'" json:"status"`
	ActionStatus    ActionStatus `gorm:"type:varchar(16)" json:"actionStatus,omitempty"`
	CreatedAt       string       `gorm:"column:created_at;type:varchar(64);index:idx_notification_user" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}
