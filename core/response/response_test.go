package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type activateRequest struct {
	ProductID uint  `json:"productId" validate:"required"`
	Activate  *bool `json:"activate" validate:"required"`
}

type stagedItem struct {
	SapNumber string `json:"productSapNumber" validate:"required"`
}

func TestValidate(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		err := Validate(activateRequest{})
		require.NotNil(t, err)
		assert.Equal(t, 400, err.Status)
		assert.Equal(t, CodeValidation, err.Code)
		assert.Contains(t, err.Errors, "productId")
		assert.Contains(t, err.Errors, "activate")
	})

	t.Run("valid struct", func(t *testing.T) {
		yes := true
		assert.Nil(t, Validate(activateRequest{ProductID: 1, Activate: &yes}))
	})

	t.Run("slice", func(t *testing.T) {
		err := Validate([]stagedItem{{SapNumber: "A"}, {}})
		require.NotNil(t, err)
		assert.Len(t, err.Errors, 1)
	})

	t.Run("valid slice", func(t *testing.T) {
		assert.Nil(t, Validate([]stagedItem{{SapNumber: "A"}}))
	})
}

func TestFromValidationError_Other(t *testing.T) {
	assert.Nil(t, FromValidationError(errors.New("boom")))
}

func TestFieldPath(t *testing.T) {
	assert.Equal(t, "productId", fieldPath("activateRequest.productId"))
	assert.Equal(t, "[1].productSapNumber", fieldPath("[1].productSapNumber"))
	assert.Equal(t, "name", fieldPath("name"))
}

func decode(t *testing.T, app *fiber.App, path string) (int, Envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)

	var env Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Get("/ok", func(c *fiber.Ctx) error { return OK(c, "fine", fiber.Map{"n": 1}) })
	app.Get("/api", func(c *fiber.Ctx) error {
		return fmt.Errorf("wrapped: %w", New(401, CodeUnauthorized, "no user"))
	})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrBadRequest })
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("db exploded") })

	status, env := decode(t, app, "/ok")
	assert.Equal(t, 200, status)
	assert.True(t, env.Success)
	assert.Equal(t, "fine", env.Message)

	status, env = decode(t, app, "/api")
	assert.Equal(t, 401, status)
	assert.False(t, env.Success)
	assert.Equal(t, CodeUnauthorized, env.Code)

	status, env = decode(t, app, "/fiber")
	assert.Equal(t, 400, status)
	assert.Equal(t, CodeValidation, env.Code)

	status, env = decode(t, app, "/missing")
	assert.Equal(t, 404, status)
	assert.Equal(t, CodeNotFound, env.Code)

	status, env = decode(t, app, "/plain")
	assert.Equal(t, 500, status)
	assert.Equal(t, CodeInternal, env.Code)
	assert.Equal(t, "Internal server error", env.Message)
}
