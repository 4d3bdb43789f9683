package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJourneyRoundTrip(t *testing.T) {
	journey := Journey{
		{Status: "CREATED", Timestamp: "2026-01-02T10:00:00Z", Location: "Thanjavur", Description: "Batch registered by farmer"},
		{Status: "SELLER_ACCEPTED", Timestamp: "2026-01-03T09:30:00Z", Location: "Thanjavur", Description: "Seller accepted for batch"},
	}

	value, err := journey.Value()
	require.NoError(t, err)

	var decoded Journey
	require.NoError(t, decoded.Scan(value))

	require.Len(t, decoded, 2)
	assert.Equal(t, journey, decoded)
}

func TestJourneyScanHandlesNilAndEmpty(t *testing.T) {
	var j Journey
	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)

	require.NoError(t, j.Scan(""))
	assert.Nil(t, j)

	require.NoError(t, j.Scan([]byte(`[]`)))
	assert.Empty(t, j)
}

func TestJourneyAppendDoesNotMutateOriginal(t *testing.T) {
	original := Journey{
		{Status: "CREATED", Timestamp: "2026-01-02T10:00:00Z", Location: "Salem", Description: "Batch registered by farmer"},
	}

	grown := original.Append(JourneyEvent{Status: "TRANSPORTED", Timestamp: "2026-01-05T16:00:00Z"})

	require.Len(t, original, 1)
	require.Len(t, grown, 2)
	assert.Equal(t, "CREATED", grown[0].Status)
	assert.Equal(t, "TRANSPORTED", grown[1].Status)
}

func TestTransportClosed(t *testing.T) {
	open := []Status{StatusCreated, StatusSellerAccepted}
	for _, s := range open {
		assert.False(t, s.TransportClosed(), "status %s should admit transporter requests", s)
	}

	closed := []Status{StatusBookedTransport, StatusInTransit, StatusAtSeller, StatusSold, StatusTransported}
	for _, s := range closed {
		assert.True(t, s.TransportClosed(), "status %s should block transporter requests", s)
	}
}

func TestBatchReference(t *testing.T) {
	ref := BatchReference("Organic Tomatoes", "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809")
	assert.Equal(t, "FTM-organic-tomatoes-1a2b3c4d", ref)
}

func TestHasAcceptedSeller(t *testing.T) {
	p := &Product{}
	assert.False(t, p.HasAcceptedSeller())

	p.SellerID = "seller-1"
	assert.True(t, p.HasAcceptedSeller())
}
