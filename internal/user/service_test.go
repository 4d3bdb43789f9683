package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/Mohit-R-04/FarmToMarket/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserTest(t *testing.T) *ServiceImplementation {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(&User{}), "Failed to migrate database")

	return NewService(db, zap.NewNop())
}

func TestRegisterUser_RoundTripsProfileBlob(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	profile := RoleData{"id": "u-1", "name": "Ravi", "farmSize": 12.5}
	registered, err := svc.RegisterUser(ctx, "farmer", profile)
	require.NoError(t, err)
	assert.Equal(t, common.RoleFarmer, registered.Role, "role is normalized to upper case")

	found, err := svc.GetRoleByUserID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, common.RoleFarmer, found.Role)
	assert.Equal(t, "Ravi", found.RoleData["name"])
	assert.Equal(t, 12.5, found.RoleData["farmSize"])
}

func TestRegisterUser_RequiresID(t *testing.T) {
	svc := setupUserTest(t)

	_, err := svc.RegisterUser(context.Background(), "seller", RoleData{"name": "No ID"})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
}

func TestGetUsersByRole(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "transporter", RoleData{"id": "t-1", "vehicle": "truck"})
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "transporter", RoleData{"id": "t-2", "vehicle": "van"})
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "farmer", RoleData{"id": "f-1"})
	require.NoError(t, err)

	profiles, err := svc.GetUsersByRole(ctx, "Transporter")
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}

func TestUpdateUserRole(t *testing.T) {
	svc := setupUserTest(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "seller", RoleData{"id": "u-9", "shop": "Old Shop"})
	require.NoError(t, err)

	updated, err := svc.UpdateUserRole(ctx, "seller", "u-9", RoleData{"id": "u-9", "shop": "New Shop"})
	require.NoError(t, err)
	assert.Equal(t, "New Shop", updated.RoleData["shop"])

	_, err = svc.UpdateUserRole(ctx, "seller", "missing", RoleData{"id": "missing"})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}
