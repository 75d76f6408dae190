// Package webapi is the HTTP front end of the back office: employee login,
// funds transfers, account statements and the customer/audit screens.
package webapi

import (
	"time"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mhgaber/branchbank/pkg/config"
	"github.com/mhgaber/branchbank/pkg/service/audit"
	"github.com/mhgaber/branchbank/pkg/service/auth"
	"github.com/mhgaber/branchbank/pkg/service/customer"
	"github.com/mhgaber/branchbank/pkg/service/ledger"
)

// Deps bundles the services the HTTP layer exposes.
type Deps struct {
	Ledger    *ledger.Service
	Customers *customer.Service
	Audit     *audit.Service
	Auth      *auth.Service
	Jwt       config.Jwt
}

// NewApp builds the Fiber application with all middleware and routes.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("branchbank back office is up")
	})

	app.Post("/api/v1/login", LoginHandler(deps.Auth))

	api := app.Group("/api/v1", jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(deps.Jwt.Secret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		},
	}))

	LedgerRoutes(api, deps.Ledger)
	CustomerRoutes(api, deps.Customers)
	AuditRoutes(api, deps.Audit)

	return app
}
