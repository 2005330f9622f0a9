package auth

import (
	"strings"

	"product-catalog/core/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// LocalKey is the fiber locals key holding the authenticated user id.
const LocalKey = "user_id"

// Config holds the token verification settings.
type Config struct {
	// Secret verifies HS256 signatures. Empty disables parsing.
	Secret string
}

// New returns a middleware that resolves the caller from an optional bearer token.
// It never rejects a request: endpoints that need a caller check UserID.
func New(cfg Config) fiber.Handler {
	key := []byte(cfg.Secret)

	return func(c *fiber.Ctx) error {
		if len(key) == 0 {
			return c.Next()
		}

		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if !strings.HasPrefix(raw, "Bearer ") {
			return c.Next()
		}

		if uid := ParseUserID(strings.TrimSpace(strings.TrimPrefix(raw, "Bearer ")), key); uid > 0 {
			c.Locals(LocalKey, uid)
		}
		return c.Next()
	}
}

// ParseUserID validates token and returns its numeric user id, or 0.
// The id comes from the uid claim, falling back to a numeric sub.
func ParseUserID(token string, key []byte) int64 {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return 0
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}

	for _, name := range []string{"uid", "sub"} {
		if v, ok := claims[name]; ok {
			if id := utils.ToInt64(v); id > 0 {
				return id
			}
		}
	}
	return 0
}

// UserID returns the authenticated user id, 0 when unauthenticated.
func UserID(c *fiber.Ctx) int64 {
	uid, _ := c.Locals(LocalKey).(int64)
	return uid
}
