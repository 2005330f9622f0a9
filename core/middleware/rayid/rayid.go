package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the ray id on requests and responses.
	Header = "X-Ray-ID"
	// LocalKey is the fiber locals key holding the ray id.
	LocalKey = "ray_id"
)

// New returns a middleware that assigns every request a ray id.
// An incoming X-Ray-ID header is reused so traces span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalKey, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}

// Get returns the ray id of the request, if any.
func Get(c *fiber.Ctx) string {
	rid, _ := c.Locals(LocalKey).(string)
	return rid
}
