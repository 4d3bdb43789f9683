package booking

import (
	"context"
	"fmt"
	"testing"

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

func setupBookingTest(t *testing.T) (*ServiceImplementation, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(&product.Product{}, &Booking{}, &notification.Notification{})
	require.NoError(t, err, "Failed to migrate database")

	return NewService(db, zap.NewNop()), db
}

func seedBookedBatch(t *testing.T, db *gorm.DB) *product.Product {
	t.Helper()

	now := common.TimestampNow()
	farmerPrice := 40.0
	batch := &product.Product{
		ID:                 uuid.NewString(),
		FarmerID:           "farmer-1",
		ProductName:        "Mangoes",
		Quantity:           80,
		Unit:               "kg",
		ProductionLocation: "Madurai",
		CurrentLocation:    "Madurai",
		SellerID:           "seller-1",
		SellerLocation:     "Coimbatore",
		FarmerPrice:        &farmerPrice,
		Status:             product.StatusBookedTransport,
		CreatedAt:          now,
		Journey: product.Journey{
			{Status: string(product.StatusCreated), Timestamp: now, Location: "Madurai"},
			{Status: string(product.StatusSellerAccepted), Timestamp: now, Location: "Madurai"},
			{Status: string(product.StatusBookedTransport), Timestamp: now, Location: "Madurai"},
		},
	}
	require.NoError(t, db.Create(batch).Error)
	return batch
}

func seedBooking(t *testing.T, db *gorm.DB, batchID string) *Booking {
	t.Helper()

	b := &Booking{
		ID:            uuid.NewString(),
		BatchID:       batchID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-1",
		Status:        StatusAccepted,
		CreatedAt:     common.TimestampNow(),
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func TestCreateBooking_ActiveSlotConflict(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)

	first, err := svc.CreateBooking(ctx, CreateBookingRequest{
		BatchID:       batch.ID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, first.Status)

	_, err = svc.CreateBooking(ctx, CreateBookingRequest{
		BatchID:       batch.ID,
		FarmerID:      "farmer-1",
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

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)

	stale := seedBooking(t, db, batch.ID)
	require.NoError(t, db.Model(&Booking{}).Where("id = ?", stale.ID).Update("status", StatusCancelled).Error)

	_, err := svc.CreateBooking(ctx, CreateBookingRequest{
		BatchID:       batch.ID,
		FarmerID:      "farmer-1",
		TransporterID: "transporter-2",
	})
	require.NoError(t, err)
}

func TestRequestCancellation(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	updated, err := svc.RequestCancellation(ctx, b.ID, RequestCancellationPayload{Reason: "Vehicle breakdown"})
	require.NoError(t, err)
	assert.Equal(t, CancellationPending, updated.CancellationStatus)
	assert.Equal(t, "Vehicle breakdown", updated.CancellationReason)
	assert.Equal(t, StatusAccepted, updated.Status, "the booking itself stays active while the handshake is open")

	var notices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "farmer-1").Find(&notices).Error)
	require.Len(t, notices, 1)
	assert.Equal(t, "Transporter requested cancellation: Vehicle breakdown", notices[0].Message)
	assert.Equal(t, notification.TypeCancellationRequest, notices[0].Type)
	assert.Equal(t, notification.StatusActionRequired, notices[0].Status)
	assert.Equal(t, notification.ActionPending, notices[0].ActionStatus)
}

func TestRequestCancellation_AlreadyPendingConflict(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	_, err := svc.RequestCancellation(ctx, b.ID, RequestCancellationPayload{Reason: "Vehicle breakdown"})
	require.NoError(t, err)

	_, err = svc.RequestCancellation(ctx, b.ID, RequestCancellationPayload{Reason: "Changed my mind"})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestRespondCancellation_RejectKeepsBookingActive(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	_, err := svc.RequestCancellation(ctx, b.ID, RequestCancellationPayload{Reason: "Vehicle breakdown"})
	require.NoError(t, err)

	updated, err := svc.RespondCancellation(ctx, b.ID, RespondCancellationPayload{Action: "REJECT"})
	require.NoError(t, err)
	assert.Equal(t, CancellationReject, updated.CancellationStatus)
	assert.Equal(t, StatusAccepted, updated.Status, "rejected cancellation must not cancel the booking")

	var transporterNotices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "transporter-1").Find(&transporterNotices).Error)
	require.Len(t, transporterNotices, 1)
	assert.Equal(t, "Your cancellation request was REJECTED. You must proceed with transport.", transporterNotices[0].Message)
	assert.Equal(t, notification.TypeAlert, transporterNotices[0].Type)

	// The farmer's request notification is fanned out to ACTION_TAKEN.
	var farmerNotices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "farmer-1").Find(&farmerNotices).Error)
	require.Len(t, farmerNotices, 1)
	assert.Equal(t, notification.StatusActionTaken, farmerNotices[0].Status)
	assert.Equal(t, notification.ActionReject, farmerNotices[0].ActionStatus)
}

func TestRespondCancellation_AcceptCancelsBooking(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	_, err := svc.RequestCancellation(ctx, b.ID, RequestCancellationPayload{Reason: "Vehicle breakdown"})
	require.NoError(t, err)

	updated, err := svc.RespondCancellation(ctx, b.ID, RespondCancellationPayload{Action: "ACCEPT"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, updated.Status)
	assert.Equal(t, CancellationAccept, updated.CancellationStatus)

	var transporterNotices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "transporter-1").Find(&transporterNotices).Error)
	require.Len(t, transporterNotices, 1)
	assert.Equal(t, "Your cancellation request was accepted.", transporterNotices[0].Message)
}

func TestRespondCancellation_RequiresPendingHandshake(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	_, err := svc.RespondCancellation(ctx, b.ID, RespondCancellationPayload{Action: "ACCEPT"})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "PRECONDITION_FAILED", apiErr.Code)
}

func TestMarkTransported(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	km := 312.5
	updated, err := svc.MarkTransported(ctx, b.ID, MarkTransportedPayload{Kilometers: &km})
	require.NoError(t, err)
	assert.Equal(t, StatusTransported, updated.Status)
	require.NotNil(t, updated.Kilometers)
	assert.Equal(t, km, *updated.Kilometers)

	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, "id = ?", batch.ID).Error)
	assert.Equal(t, product.StatusAtSeller, reloaded.Status)
	assert.Equal(t, "Coimbatore", reloaded.CurrentLocation, "product moves to the seller location")
	require.Len(t, reloaded.Journey, 4, "completion should append exactly one journey event")
	assert.Equal(t, string(product.StatusTransported), reloaded.Journey[3].Status)

	// The farmer price fixed at seller acceptance survives transport.
	require.NotNil(t, reloaded.FarmerPrice)
	assert.Equal(t, 40.0, *reloaded.FarmerPrice)

	var notices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "farmer-1").Find(&notices).Error)
	require.Len(t, notices, 1)
	assert.Equal(t, "Your product has been transported successfully.", notices[0].Message)
}

func TestMarkTransported_RepeatCallConflicts(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	_, err := svc.MarkTransported(ctx, b.ID, MarkTransportedPayload{})
	require.NoError(t, err)

	_, err = svc.MarkTransported(ctx, b.ID, MarkTransportedPayload{})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)

	// The rejected repeat must not duplicate the journey event or re-notify.
	var reloaded product.Product
	require.NoError(t, db.First(&reloaded, "id = ?", batch.ID).Error)
	assert.Len(t, reloaded.Journey, 4)

	var notices []notification.Notification
	require.NoError(t, db.Where("user_id = ?", "farmer-1").Find(&notices).Error)
	assert.Len(t, notices, 1)
}

func TestMarkTransported_CancelledBookingConflicts(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)
	require.NoError(t, db.Model(&Booking{}).Where("id = ?", b.ID).Update("status", StatusCancelled).Error)

	_, err := svc.MarkTransported(ctx, b.ID, MarkTransportedPayload{})
	require.Error(t, err)

	apiErr, ok := common.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", apiErr.Code)
}

func TestUpdateBooking_PartialMerge(t *testing.T) {
	svc, db := setupBookingTest(t)
	ctx := context.Background()
	batch := seedBookedBatch(t, db)
	b := seedBooking(t, db, batch.ID)

	status := StatusPickedUp
	updated, err := svc.UpdateBooking(ctx, b.ID, UpdateBookingRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusPickedUp, updated.Status)
	assert.Equal(t, "transporter-1", updated.TransporterID, "absent fields stay untouched")
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)
}
