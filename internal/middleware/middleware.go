package middleware

import (
	"errors"
	"pantrypal/domain"
	"pantrypal/internal/api/presenters"
	"pantrypal/internal/metrics"
	"pantrypal/pkg/jwt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	middleware struct {
		metrics *metrics.Collector
	}
)

func NewMiddleware(collector *metrics.Collector) Middleware {
	return &middleware{metrics: collector}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware accepts only the owner bearer token and stores its subject
// and role in c.Locals.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, domain.ErrTokenInvalid)
		}

		subject, role, err := jwtService.GetSubjectByToken(token)
		if err != nil {
			message := domain.MessageFailedTokenInvalid
			if errors.Is(err, domain.ErrTokenExpired) {
				message = domain.ErrTokenExpired.Error()
			}
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
		}

		c.Locals("subject", subject)
		c.Locals("role", role)
		return c.Next()
	}
}

// MetricsMiddleware counts requests by matched route so ids in paths do not
// explode label cardinality.
func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.metrics.Request(c.Method(), route, status)
		return err
	}
}
