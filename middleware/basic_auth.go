package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"claim_relay/config"
	"claim_relay/models"
	"claim_relay/pkg/logging"
)

// BasicAuth admits requests whose Basic credentials match the configured pair.
// Without both secrets configured every request is refused with 500.
func BasicAuth(cfg *config.Config) fiber.Handler {
	if !cfg.HasCredentials() {
		logging.Logger.Error("Auth credentials not set in environment variables")
		return func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusInternalServerError).
				JSON(models.ErrorResponse{Error: "Server configuration error"})
		}
	}

	realm := cfg.AuthRealm
	if realm == "" {
		realm = config.DefaultRealm
	}
	challenge := fmt.Sprintf("Basic realm=%q", realm)

	return basicauth.New(basicauth.Config{
		Users: map[string]string{cfg.AuthUser: cfg.AuthPass},
		Realm: realm,
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, challenge)
			return c.Status(fiber.StatusUnauthorized).
				JSON(models.ErrorResponse{Error: "Authentication required."})
		},
	})
}
