package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"logistics-erp/cache"
	fileController "logistics-erp/controllers/file"
	notificationController "logistics-erp/controllers/notification"
	shipmentController "logistics-erp/controllers/shipment"
	"logistics-erp/logger"
	"logistics-erp/middleware"
	"logistics-erp/services/mailer"
)

// Deps carries the optional collaborators the controllers need. Cache may be
// nil (dashboard skips caching) and Mailer may be nil (notification endpoint
// answers 503).
type Deps struct {
	Cache     *cache.Client
	Mailer    mailer.Sender
	UploadDir string
}

func SetupRoutes(app *fiber.App, db *gorm.DB, deps Deps) {
	asyncLogger := logger.NewAsyncLogger(db)
	shipments := shipmentController.NewShipmentController(db, deps.Cache)
	notifications := notificationController.NewNotificationController(deps.Mailer)
	files := fileController.NewFileController(db, deps.UploadDir)

	// Start the async request logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "logistics-erp", "status": "ok"})
	})

	api := app.Group("/api", middleware.RequestLog(asyncLogger))

	/*=============================================================================
	| Shipment Routes
	===============================================================================*/
	shipmentGroup := api.Group("/shipments")
	shipmentGroup.Get("/dashboard/summary", shipments.Dashboard)
	shipmentGroup.Get("/enquiry-number", shipments.EnquiryNumber)
	shipmentGroup.Post("/bulk-upload", shipments.BulkUpload)
	shipmentGroup.Post("/", shipments.Store)
	shipmentGroup.Get("/", shipments.Index)
	shipmentGroup.Get("/:id", shipments.Show)
	shipmentGroup.Put("/:id", shipments.Update)
	shipmentGroup.Patch("/:id/delivery-status", shipments.UpdateDeliveryStatus)
	shipmentGroup.Patch("/:id/status", shipments.UpdateStatus)
	shipmentGroup.Put("/:id/manual-desc", shipments.UpdateManualDesc)

	/*=============================================================================
	| Notification Routes
	===============================================================================*/
	api.Post("/notifications/send-tracking-email", notifications.SendTrackingEmail)

	/*=============================================================================
	| File Routes
	===============================================================================*/
	api.Post("/files/upload", files.Upload)
}
