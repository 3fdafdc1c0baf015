package audit

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/datatypes"

	"github.com/MuhamadAgungGumelar/wa-booking-bot/internal/core/auth"
)

// Recorder receives finished entries. *Service satisfies it.
type Recorder interface {
	Record(e *Entry)
}

// Middleware records every mutating request after it has been handled.
// tenantParam names the route param holding the tenant id.
func Middleware(rec Recorder, tenantParam string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		default:
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		// ctx strings are reused after the handler returns
		e := &Entry{
			Actor:     "anonymous",
			TenantID:  utils.CopyString(c.Params(tenantParam)),
			Method:    utils.CopyString(c.Method()),
			Route:     c.Route().Path,
			Path:      utils.CopyString(c.Path()),
			Status:    status,
			IPAddress: c.IP(),
			UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
			Duration:  time.Since(start).Milliseconds(),
		}
		if q := c.Queries(); len(q) > 0 {
			e.Metadata = datatypes.JSONMap{}
			for k, v := range q {
				e.Metadata[utils.CopyString(k)] = utils.CopyString(v)
			}
		}
		if claims := auth.ClaimsFrom(c); claims != nil {
			e.Actor = claims.Subject
			e.Role = claims.Role
		}
		rec.Record(e)

		return err
	}
}
