package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

// requestLogger tags every request with an ID and logs method, path, status
// and latency once the handler chain returns.
func (s *Server) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := uuid.NewString()

		c.Locals("requestid", requestID)
		c.SetUserContext(logger.WithRequestID(c.UserContext(), requestID))

		err := c.Next()

		ctx := c.UserContext()
		statusCode := c.Response().StatusCode()
		latency := time.Since(start)

		switch {
		case statusCode >= 500:
			s.logger.Error(ctx, "%s %s -> %d (%dms)", c.Method(), c.OriginalURL(), statusCode, latency.Milliseconds())
		case statusCode >= 400:
			s.logger.Warn(ctx, "%s %s -> %d (%dms)", c.Method(), c.OriginalURL(), statusCode, latency.Milliseconds())
		default:
			s.logger.Info(ctx, "%s %s -> %d (%dms)", c.Method(), c.OriginalURL(), statusCode, latency.Milliseconds())
		}

		return err
	}
}

// handleError maps pipeline errors onto HTTP status codes. Validation
// failures are the only errors a client sees at submission; everything else
// surfaces through polling.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var (
		ve *apperr.ValidationError
		nf *apperr.NotFoundError
		te *apperr.ExternalToolError
		fe *fiber.Error
	)

	switch {
	case errors.As(err, &ve):
		return respondError(c, fiber.StatusBadRequest, ve.Reason)
	case errors.As(err, &nf):
		return respondError(c, fiber.StatusNotFound, nf.Error())
	case errors.As(err, &te):
		return respondError(c, fiber.StatusBadGateway, te.Error())
	case errors.As(err, &fe):
		return respondError(c, fe.Code, fe.Message)
	default:
		s.logger.Error(c.UserContext(), "Unhandled error: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "internal error")
	}
}

// respondError sends a JSON error response.
func respondError(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// respondJSON sends a JSON success response.
func respondJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}
