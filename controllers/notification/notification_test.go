package notification_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logistics-erp/controllers/notification"
	"logistics-erp/services/mailer"
)

type captureSender struct {
	sent []mailer.TrackingMail
	err  error
}

func (s *captureSender) Send(mail mailer.TrackingMail) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, mail)
	return nil
}

func newApp(sender mailer.Sender) *fiber.App {
	app := fiber.New()
	nc := notification.NewNotificationController(sender)
	app.Post("/api/notifications/send-tracking-email", nc.SendTrackingEmail)
	return app
}

func post(t *testing.T, app *fiber.App, payload interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/notifications/send-tracking-email", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestSendTrackingEmail_DispatchesThroughSender(t *testing.T) {
	sender := &captureSender{}
	app := newApp(sender)

	resp := post(t, app, map[string]string{
		"to":           "ops@example.com",
		"subject":      "Shipment update",
		"message":      "Vessel departed",
		"bl_no":        "BL-77",
		"container_no": "MSKU1234567",
		"etd":          "2026-02-01",
		"eta":          "2026-02-20",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "ops@example.com", sender.sent[0].To)
	assert.Equal(t, "BL-77", sender.sent[0].BLNo)
	assert.Equal(t, "MSKU1234567", sender.sent[0].ContainerNo)
}

func TestSendTrackingEmail_RejectsInvalidRequest(t *testing.T) {
	sender := &captureSender{}
	app := newApp(sender)

	cases := []map[string]string{
		{"subject": "no recipient"},
		{"to": "not-an-address", "subject": "x"},
		{"to": "ops@example.com"},
	}
	for _, payload := range cases {
		resp := post(t, app, payload)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %v", payload)
		resp.Body.Close()
	}
	assert.Empty(t, sender.sent)
}

func TestSendTrackingEmail_NoSenderConfigured(t *testing.T) {
	app := newApp(nil)

	resp := post(t, app, map[string]string{
		"to":      "ops@example.com",
		"subject": "Shipment update",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestSendTrackingEmail_TransportFailure(t *testing.T) {
	sender := &captureSender{err: errors.New("dial tcp: connection refused")}
	app := newApp(sender)

	resp := post(t, app, map[string]string{
		"to":      "ops@example.com",
		"subject": "Shipment update",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
