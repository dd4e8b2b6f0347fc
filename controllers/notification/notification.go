package notification

import (
	"github.com/gofiber/fiber/v2"

	"logistics-erp/logger"
	"logistics-erp/services/mailer"
	"logistics-erp/types"
	notificationTypes "logistics-erp/types/notification"
)

// NotificationController dispatches tracking notification mail through the
// injected sender.
type NotificationController struct {
	Sender mailer.Sender
}

// NewNotificationController creates a new notification controller
func NewNotificationController(sender mailer.Sender) *NotificationController {
	return &NotificationController{Sender: sender}
}

// SendTrackingEmail renders the tracking mail for one shipment and dispatches
// it. Transport configuration and retry policy live with the sender.
func (nc *NotificationController) SendTrackingEmail(c *fiber.Ctx) error {
	var req notificationTypes.TrackingMailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(types.ApiResponse{
			Status:  fiber.StatusBadRequest,
			Message: err.Error(),
		})
	}

	if nc.Sender == nil {
		logger.Warning("Tracking mail requested but no mail sender is configured")
		return c.Status(fiber.StatusServiceUnavailable).JSON(types.ApiResponse{
			Status:  fiber.StatusServiceUnavailable,
			Message: "Mail transport is not configured",
		})
	}

	mail := mailer.TrackingMail{
		To:          req.To,
		Subject:     req.Subject,
		Message:     req.Message,
		BLNo:        req.BLNo,
		ContainerNo: req.ContainerNo,
		ETD:         req.ETD,
		ETA:         req.ETA,
	}
	if err := nc.Sender.Send(mail); err != nil {
		logger.Error("Failed to send tracking mail", err)
		return c.Status(fiber.StatusBadGateway).JSON(types.ApiResponse{
			Status:  fiber.StatusBadGateway,
			Message: "Failed to send tracking mail",
		})
	}

	logger.Success("Tracking mail sent to " + req.To)
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Status:  fiber.StatusOK,
		Message: "Tracking mail sent",
	})
}
