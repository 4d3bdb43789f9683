// File: internal/notification/service.go
package notification

import (
	"context"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for notification-related business logic.
type Service interface {
	CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error)
	GetNotificationsForUser(ctx context.Context, userID string, page, pageSize int) ([]Notification, *common.Pagination, error)
	MarkNotificationAsRead(ctx context.Context, id string) (*Notification, error)
}

// CreateNotificationRequest is the payload for directly creating a notification.
// Lifecycle transitions build notifications themselves via New; this request
// backs the explicit creation endpoint.
type CreateNotificationRequest struct {
	UserID          string       `json:"userId" binding:"required"`
	Message         string       `json:"message" binding:"required"`
	Type            Type         `json:"type" binding:"required,oneof=INFO ALERT CANCELLATION_REQUEST"`
	RelatedEntityID string       `json:"relatedEntityId"`
	Status          Status       `json:"status"`
	ActionStatus    ActionStatus `json:"actionStatus"`
}

// ServiceImplementation implements the notification Service interface.
type ServiceImplementation struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new notification service.
func NewService(repo Repository, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{repo: repo, logger: logger}
}

// New builds a notification record ready for insertion. Used by lifecycle
// transitions so derived writes share one code path.
func New(userID, message string, typ Type, relatedEntityID string, status Status, action ActionStatus) *Notification {
	return &Notification{
		ID:              uuid.NewString(),
		UserID:          userID,
		Message:         message,
		Type:            typ,
		RelatedEntityID: relatedEntityID,
		Status:          status,
		ActionStatus:    action,
		CreatedAt:       common.TimestampNow(),
	}
}

func (s *ServiceImplementation) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	status := req.Status
	if status == "" {
		status = StatusUnread
	}

	created := New(req.UserID, req.Message, req.Type, req.RelatedEntityID, status, req.ActionStatus)
	if err := s.repo.Create(ctx, created); err != nil {
		s.logger.Error("Failed to create notification", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (s *ServiceImplementation) GetNotificationsForUser(ctx context.Context, userID string, page, pageSize int) ([]Notification, *common.Pagination, error) {
	return s.repo.GetByUserID(ctx, userID, page, pageSize)
}

func (s *ServiceImplementation) MarkNotificationAsRead(ctx context.Context, id string) (*Notification, error) {
	return s.repo.MarkAsRead(ctx, id)
}
