// File: internal/user/service.go
package user

import (
	"context"
	"strings"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service defines the interface for role registration business logic.
type Service interface {
	RegisterUser(ctx context.Context, role string, data RoleData) (*User, error)
	GetUsersByRole(ctx context.Context, role string) ([]RoleData, error)
	GetRoleByUserID(ctx context.Context, userID string) (*User, error)
	UpdateUserRole(ctx context.Context, role, userID string, data RoleData) (*User, error)
	DeleteAllUsers(ctx context.Context) (int64, error)
}

// ServiceImplementation implements the user Service interface.
type ServiceImplementation struct {
	db     *gorm.DB
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new user service.
func NewService(db *gorm.DB, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		db:     db,
		repo:   NewGORMRepository(db),
		logger: logger,
	}
}

// RegisterUser upserts a user under the given role. The caller supplies the
// identifier inside the profile blob; roles are normalized to upper case.
func (s *ServiceImplementation) RegisterUser(ctx context.Context, role string, data RoleData) (*User, error) {
	id, _ := data["id"].(string)
	if id == "" {
		return nil, common.ErrBadRequest.WithDetails("User ID is required.")
	}

	registered := &User{
		ID:       id,
		Role:     strings.ToUpper(role),
		RoleData: data,
	}
	if err := s.repo.Save(ctx, registered); err != nil {
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("userID", registered.ID),
		zap.String("role", registered.Role))
	return registered, nil
}

// GetUsersByRole returns the stored profile blobs for every user in a role.
func (s *ServiceImplementation) GetUsersByRole(ctx context.Context, role string) ([]RoleData, error) {
	users, err := s.repo.FindByRole(ctx, strings.ToUpper(role))
	if err != nil {
		return nil, err
	}
	profiles := make([]RoleData, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.RoleData)
	}
	return profiles, nil
}

func (s *ServiceImplementation) GetRoleByUserID(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

// UpdateUserRole replaces an existing user's role and profile blob.
func (s *ServiceImplementation) UpdateUserRole(ctx context.Context, role, userID string, data RoleData) (*User, error) {
	existing, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing.Role = strings.ToUpper(role)
	existing.RoleData = data
	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info("User role updated",
		zap.String("userID", existing.ID),
		zap.String("role", existing.Role))
	return existing, nil
}

func (s *ServiceImplementation) DeleteAllUsers(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Warn("All users deleted", zap.Int64("count", deleted))
	return deleted, nil
}
