package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTrackingHTML_ContainsTrackingFields(t *testing.T) {
	body, err := RenderTrackingHTML(TrackingMail{
		To:          "ops@example.com",
		Subject:     "Shipment Tracking Update",
		Message:     "Vessel departed on schedule.",
		BLNo:        "BL-9912",
		ContainerNo: "MSKU-7041234",
		ETD:         "2025-03-05",
		ETA:         "2025-04-01",
	})
	require.NoError(t, err)

	assert.Contains(t, body, "BL-9912")
	assert.Contains(t, body, "MSKU-7041234")
	assert.Contains(t, body, "2025-03-05")
	assert.Contains(t, body, "2025-04-01")
	assert.Contains(t, body, "Vessel departed on schedule.")
}

func TestRenderTrackingHTML_EscapesMarkup(t *testing.T) {
	body, err := RenderTrackingHTML(TrackingMail{
		Message: "<script>alert(1)</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}

func TestNewSMTPSenderFromEnv_Defaults(t *testing.T) {
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_PORT", "")
	t.Setenv("MAIL_FROM", "")

	s := NewSMTPSenderFromEnv()
	assert.Equal(t, "no-reply@shipmenttracking.com", s.from)
	assert.Equal(t, 587, s.dialer.Port)
	assert.Equal(t, "smtp.example.com", s.dialer.Host)
}
