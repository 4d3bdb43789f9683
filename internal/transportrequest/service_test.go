package transportrequest

import (
	"context"
	"fmt"
	"testing"

	"github.com/Mohit-R-04/FarmToMarket/internal/booking"
	"github.com/Mohit-R-04/FarmToMarket/internal/common"
	"github.com/Mohit-R-04/FarmToMarket/internal/notification"
	"github.com/Mohit-R-04/FarmToMarket/internal/product"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTransporterRequestTest(t *testing.T) (*ServiceImplementation, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&product.Product{},
		&TransporterRequest{},
		&booking.Booking{},
		&notification.Notification{},
	)
	require.NoError(t, err, "Failed to migrate database")

	return NewService(db, zap.NewNop()), db
}

func seedAcceptedBatch(t *testing.T, db *gorm.DB) *product.Product {
	t.Helper()

	now := common.TimestampNow()
	batch := &product.Product{
		ID:                 uuid.NewString(),
		FarmerID:           "farmer-1",
		ProductName:        "Onions",
		Quantity:           200,
		Unit:               "kg",
		ProductionLocation: "Salem",
		CurrentLocation:    "Salem",
		SellerID:           "seller-1",
		SellerName:         "Green Mart",
		SellerLocation:     "Chennai",
		Status:             product.StatusSellerAccepted,
		CreatedAt:          now,
		Journey: product.Journey{
			{Status: string(product.StatusCreated), Timestamp: now, Location: "Salem"},
			{Status: string(product.StatusSellerAccepted), Timestamp: now, Location: "Salem"},
		},
	}
	require.NoError(t, db.Create(batch).Error)
	return batch
}

func TestCreateTransporterRequest_RequiresAcceptedSeller(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()

	now := common.TimestampNow()
	batch := &product.Product{
		ID:          uuid.NewString(),
		FarmerID:    "farmer-1",
		ProductName: "Onions",
		Status:      product.StatusCreated,
		CreatedAt:   now,
	}
	require.NoError(t, db.Create(batch).Error)

	_, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-1",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "PRECONDITION_FAILED", apiErr.Code)
}

func TestCreateTransporterRequest_SnapshotsSellerFromBatch(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	charge := 500.0
	created, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:            batch.ID,
		TransporterID:        "transporter-1",
		FarmerDemandedCharge: &charge,
		TransportDate:        "2026-09-01",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, "farmer-1", created.FarmerID)
	assert.Equal(t, "seller-1", created.SellerID)
	assert.Equal(t, "Chennai", created.SellerLocation)
}

func TestCreateTransporterRequest_DuplicatePendingConflict(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	first, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-1",
	})
	require.NoError(t, err)

	_, err = svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-2",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	details, ok := apiErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, first.ID, details["existingRequestId"])
}

func TestCreateTransporterRequest_TransportClosedConflict(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	require.NoError(t, db.Model(&product.Product{}).
		Where("id = ?", batch.ID).
		Update("status", product.StatusInTransit).Error)

	_, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-1",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestCreateTransporterRequest_ActiveBookingConflict(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	existing := &booking.Booking{
		ID:            uuid.NewString(),
		BatchID:       batch.ID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-9",
		Status:        booking.StatusAccepted,
		CreatedAt:     common.TimestampNow(),
	}
	require.NoError(t, db.Create(existing).Error)

	_, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-1",
	})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
	details, ok := apiErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, existing.ID, details["existingRequestId"])
}

func TestUpdateStatus_AcceptSpawnsBookingAndBooksBatch(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	charge := 750.0
	created, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:            batch.ID,
		TransporterID:        "transporter-1",
		FarmerDemandedCharge: &charge,
		TransportDate:        "2026-09-01",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: StatusAccepted})
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, updated.Status)

	var spawned booking.Booking
	require.NoError(t, db.First(&spawned, "batch_id = ?", batch.ID).Error)
	assert.Equal(t, booking.StatusAccepted, spawned.Status)
	assert.Equal(t, "transporter-1", spawned.TransporterID)
	assert.Equal(t, "seller-1", spawned.SelectedSellerID)
	assert.Equal(t, "2026-09-01", spawned.TransportDate)
	require.NotNil(t, spawned.FarmerDemandedCharge)
	assert.Equal(t, charge, *spawned.FarmerDemandedCharge)

	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, "id = ?", batch.ID).Error)
	assert.Equal(t, product.StatusBookedTransport, reloaded.Status)
	assert.Equal(t, "transporter-1", reloaded.TransporterID)
	require.Len(t, reloaded.Journey, 3, "acceptance should append exactly one journey event")
	assert.Equal(t, string(product.StatusBookedTransport), reloaded.Journey[2].Status)

	var notices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "farmer-1").Find(&notices).Error)
	require.Len(t, notices, 1)
	assert.Equal(t, "Your transporter request has been accepted!", notices[0].Message)
	assert.Equal(t, spawned.ID, notices[0].RelatedEntityID)
}

func TestUpdateStatus_AcceptedRequestCannotBeAcceptedTwice(t *testing.T) {
	svc, db := setupTransporterRequestTest(t)
	ctx := context.Background()
	batch := seedAcceptedBatch(t, db)

	created, err := svc.CreateTransporterRequest(ctx, CreateTransporterRequestRequest{
		ProductID:     batch.ID,
		TransporterID: "transporter-1",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: StatusAccepted})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, created.ID, UpdateStatusRequest{Status: StatusAccepted})
	require.Error(t, err)
	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)

	// Only one booking may exist for the batch.
	var count int64
	require.NoError(t, db.Model(&booking.Booking{}).Where("batch_id = ?", batch.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
