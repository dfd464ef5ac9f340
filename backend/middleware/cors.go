package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/utils"
)

const (
	ActionVersion = "2.4"
	// CAIP-2 id of Solana mainnet.
	BlockchainID = "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
)

// ActionsCORS applies the CORS policy wallets and blink clients expect.
func ActionsCORS(allowOrigins string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins:  allowOrigins,
		AllowMethods:  "GET,POST,PUT,OPTIONS",
		AllowHeaders:  "Content-Type,Authorization,Content-Encoding,Accept-Encoding,X-Action-Version,X-Blockchain-Ids",
		ExposeHeaders: "X-Action-Version,X-Blockchain-Ids",
	})
}

// ActionHeaders stamps every response with the Actions protocol headers.
func ActionHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Action-Version", ActionVersion)
		c.Set("X-Blockchain-Ids", BlockchainID)
		return c.Next()
	}
}

// CustomErrorHandler renders errors that escape the handlers, including
// Fiber's own 404 and 405.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	return utils.SendError(c, code, errorCode(code), message, nil)
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMIT_EXCEEDED"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}

func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		return c.Next()
	}
}
