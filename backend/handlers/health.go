package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/barkprotocol/blinkshare-platform-sub000/backend/models"
	"github.com/barkprotocol/blinkshare-platform-sub000/backend/utils"
)

const healthTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck answers 503 when any registered dependency fails its ping. The
// component report travels in the envelope's data either way.
func HealthCheck(version string, deps map[string]Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		check := models.NewHealthCheck(version)
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				check.AddComponent(name, "unhealthy", err.Error())
				continue
			}
			check.AddComponent(name, "healthy", "")
		}

		if check.Status == "healthy" {
			return utils.SendSuccess(c, check, "Service healthy")
		}

		details := make(map[string]string, len(check.Components))
		for name, component := range check.Components {
			if component.Status != "healthy" {
				details[name] = component.Message
			}
		}
		resp := models.NewErrorResponse("SERVICE_UNAVAILABLE", "One or more dependencies are unhealthy", details)
		resp.Data = check
		return utils.SendJSON(c, fiber.StatusServiceUnavailable, resp)
	}
}

// NotFound is the fallback for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return utils.SendNotFound(c, fmt.Sprintf("Route %s %s not found", c.Method(), c.Path()))
}
