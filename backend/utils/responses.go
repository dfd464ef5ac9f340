package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/internal/domain/blinks"
)

func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, models.NewSuccessResponse(data, message))
}

func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, models.NewErrorResponse(code, message, details))
}

func SendBadRequest(c *fiber.Ctx, code, message string) error {
	return SendError(c, http.StatusBadRequest, code, message, nil)
}

func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message, nil)
}

// SendServiceError maps a blink service failure onto the error envelope.
// Anything that is not a *blinks.RequestError is reported as a 500 without
// leaking its text.
func SendServiceError(c *fiber.Ctx, err error) error {
	var reqErr *blinks.RequestError
	if errors.As(err, &reqErr) {
		return SendError(c, reqErr.Status, reqErr.Code, reqErr.Message, nil)
	}
	return SendInternalServerError(c, "An unexpected error occurred")
}

// GetIPAddress returns the client address. Forwarding headers only count
// when the app is configured with a ProxyHeader and the peer is a trusted
// proxy; otherwise this is the socket peer.
func GetIPAddress(c *fiber.Ctx) string {
	return c.IP()
}

func GetUserAgent(c *fiber.Ctx) string {
	return c.Get("User-Agent")
}
