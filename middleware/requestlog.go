package middleware

import (
	"github.com/gofiber/fiber/v2"

	"logistics-erp/logger"
	"logistics-erp/utils"
)

// RequestLog queues a sanitized copy of every API request and response onto
// the async logger after the handler has run.
func RequestLog(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		asyncLogger.Log(utils.CreateLogEntry(c))
		return err
	}
}
