package integrity

import (
	"context"
	"fmt"
	"testing"

	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"
	"github.com/Mohit-R-04/FarmToMarket/internal/sellerrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/transportrequest"
	"github.com/Mohit-R-04/FarmToMarket/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIntegrityTest(t *testing.T) (*ServiceImplementation, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&product.Product{},
		&sellerrequest.SellerRequest{},
		&transportrequest.TransporterRequest{},
		&booking.Booking{},
		&notification.Notification{},
		&user.User{},
	)
	require.NoError(t, err, "Failed to migrate database")

	return NewService(db, zap.NewNop()), db
}

// seedGraph creates one batch with a seller request, a transporter request, a
// booking, and notifications pointing at each of them.
func seedGraph(t *testing.T, db *gorm.DB) (batchID string) {
	t.Helper()

	now := common.TimestampNow()
	batch := &product.Product{
		ID:          uuid.NewString(),
		FarmerID:    "farmer-1",
		ProductName: "Bananas",
		Status:      product.StatusBookedTransport,
		CreatedAt:   now,
	}
	require.NoError(t, db.Create(batch).Error)

	sellerReq := &sellerrequest.SellerRequest{
		ID:        uuid.NewString(),
		ProductID: batch.ID,
		FarmerID:  "farmer-1",
		SellerID:  "seller-1",
		Status:    sellerrequest.StatusAccepted,
		CreatedAt: now,
	}
	require.NoError(t, db.Create(sellerReq).Error)

	transporterReq := &transportrequest.TransporterRequest{
		ID:            uuid.NewString(),
		ProductID:     batch.ID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-1",
		Status:        transportrequest.StatusAccepted,
		CreatedAt:     now,
	}
	require.NoError(t, db.Create(transporterReq).Error)

	bk := &booking.Booking{
		ID:            uuid.NewString(),
		BatchID:       batch.ID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-1",
		Status:        booking.StatusAccepted,
		CreatedAt:     now,
	}
	require.NoError(t, db.Create(bk).Error)

	for _, relatedID := range []string{batch.ID, sellerReq.ID, transporterReq.ID, bk.ID} {
		require.NoError(t, db.Create(notification.New(
			"farmer-1", "event", notification.TypeInfo, relatedID, notification.StatusUnread, "",
		)).Error)
	}

	return batch.ID
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestDeleteProduct_CascadeLeavesNoResiduals(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	batchID := seedGraph(t, db)

	result, err := svc.DeleteProduct(ctx, batchID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, result.DeletedSellerRequests)
	assert.EqualValues(t, 1, result.DeletedTransporterRequests)
	assert.EqualValues(t, 1, result.DeletedBookings)
	assert.EqualValues(t, 4, result.DeletedNotifications)

	assert.EqualValues(t, 0, countRows(t, db, &product.Product{}))
	assert.EqualValues(t, 0, countRows(t, db, &sellerrequest.SellerRequest{}))
	assert.EqualValues(t, 0, countRows(t, db, &transportrequest.TransporterRequest{}))
	assert.EqualValues(t, 0, countRows(t, db, &booking.Booking{}))
	assert.EqualValues(t, 0, countRows(t, db, &notification.Notification{}))
}

func TestDeleteProduct_UnrelatedRowsSurvive(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	doomed := seedGraph(t, db)
	survivor := seedGraph(t, db)

	_, err := svc.DeleteProduct(ctx, doomed)
	require.NoError(t, err)

	var remaining product.Product
	require.NoError(t, db.First(&remaining, "id = ?", survivor).Error)
	assert.EqualValues(t, 1, countRows(t, db, &sellerrequest.SellerRequest{}))
	assert.EqualValues(t, 1, countRows(t, db, &booking.Booking{}))
	assert.EqualValues(t, 4, countRows(t, db, &notification.Notification{}))
}

func TestDeleteProduct_NotFound(t *testing.T) {
	svc, _ := setupIntegrityTest(t)

	_, err := svc.DeleteProduct(context.Background(), uuid.NewString())
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestDeleteProduct_StoreFaultReportsIntegrityFailure(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	batchID := seedGraph(t, db)

	// Break the store mid-cascade so a step inside the transaction fails.
	require.NoError(t, db.Migrator().DropTable(&booking.Booking{}))

	_, err := svc.DeleteProduct(ctx, batchID)
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "INTEGRITY_FAILURE", apiErr.Code)

	// The failed cascade must leave the rest of the graph untouched.
	var remaining product.Product
	require.NoError(t, db.First(&remaining, "id = ?", batchID).Error)
	assert.EqualValues(t, 1, countRows(t, db, &sellerrequest.SellerRequest{}))
}

func TestCleanupOrphans_IsIdempotent(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	batchID := seedGraph(t, db)

	// Simulate a crashed cascade: the product vanishes, everything else stays.
	require.NoError(t, db.Delete(&product.Product{}, "id = ?", batchID).Error)

	first, err := svc.CleanupOrphans(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.DeletedSellerRequests)
	assert.EqualValues(t, 1, first.DeletedTransporterRequests)
	assert.EqualValues(t, 1, first.DeletedBookings)
	assert.EqualValues(t, 4, first.DeletedNotifications)

	second, err := svc.CleanupOrphans(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, second.Total(), "a second sweep must find nothing")
}

func TestCleanupOrphans_SparesLiveRows(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	seedGraph(t, db)

	// A notification without a related entity is never an orphan.
	require.NoError(t, db.Create(notification.New(
		"seller-1", "welcome", notification.TypeInfo, "", notification.StatusUnread, "",
	)).Error)

	result, err := svc.CleanupOrphans(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, result.Total())

	assert.EqualValues(t, 5, countRows(t, db, &notification.Notification{}))
}

func TestClearAllData(t *testing.T) {
	svc, db := setupIntegrityTest(t)
	ctx := context.Background()
	seedGraph(t, db)
	require.NoError(t, db.Create(&user.User{ID: "u1", Role: common.RoleFarmer, RoleData: user.RoleData{"id": "u1"}}).Error)

	result, err := svc.ClearAllData(ctx)
	require.NoError(t, err)

	assert.EqualValues(t, 9, result.TotalRecordsDeleted)
	assert.EqualValues(t, 1, result.DeletedByTable["products"])
	assert.EqualValues(t, 1, result.DeletedByTable["users"])
	assert.EqualValues(t, 4, result.DeletedByTable["notifications"])

	assert.EqualValues(t, 0, countRows(t, db, &product.Product{}))
	assert.EqualValues(t, 0, countRows(t, db, &user.User{}))
}
