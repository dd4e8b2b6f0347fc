package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_AssignableExcludesDeleted(t *testing.T) {
	assert.True(t, StatusActive.IsAssignable())
	assert.True(t, StatusCancelled.IsAssignable())
	assert.False(t, StatusDeleted.IsAssignable())
	assert.False(t, Status("ARCHIVED").IsAssignable())
}

func TestDeliveryStatus_Validity(t *testing.T) {
	for _, s := range []DeliveryStatus{DeliveryInProcess, DeliveryInTransit, DeliveryDelivered} {
		assert.True(t, s.IsValid(), string(s))
	}
	assert.False(t, DeliveryStatus("LOST").IsValid())
	assert.False(t, DeliveryStatus("").IsValid())
}

func TestModeAndIncotermLookups(t *testing.T) {
	assert.True(t, IsValidMode("Sea"))
	assert.False(t, IsValidMode("sea"))
	assert.False(t, IsValidMode("Teleport"))

	assert.True(t, IsValidIncoterm("FOB"))
	assert.True(t, IsValidIncoterm("DDP"))
	assert.False(t, IsValidIncoterm("XYZ"))
}
