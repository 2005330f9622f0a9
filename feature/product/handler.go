package product

import (
	"errors"
	"net/http"

	"product-catalog/core/logger"
	"product-catalog/core/middleware/auth"
	"product-catalog/core/response"
	"product-catalog/feature/product/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CodeProductNotFound is the envelope code for a missing product.
const CodeProductNotFound = "PRODUCT_NOTFOUND"

// Handler handles HTTP requests for products.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the product routes. Static paths come before /:id.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Post("/", h.HandleAddProducts)
	group.Get("/", h.HandleGetProducts)
	group.Get("/cache-products", h.HandleGetCacheProducts)
	group.Delete("/cache-products", h.HandleClearCacheProducts)
	group.Get("/autoRefresh", h.HandleAutoRefresh)
	group.Post("/activate", h.HandleActivate)
	group.Get("/:id", h.HandleGetProduct)
}

// HandleAddProducts stages a batch of SAP products.
func (h *Handler) HandleAddProducts(c *fiber.Ctx) error {
	var batch []models.SapProduct
	if err := c.BodyParser(&batch); err != nil {
		return response.Fail(c, response.MalformedJSONError)
	}
	if apiErr := response.Validate(batch); apiErr != nil {
		return response.Fail(c, apiErr)
	}

	merged, err := h.service.AddProducts(c.UserContext(), batch)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgProductsStaged, merged)
}

// HandleGetCacheProducts returns the staged batch.
func (h *Handler) HandleGetCacheProducts(c *fiber.Ctx) error {
	items, err := h.service.GetCacheProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgCacheFetched, items)
}

// HandleClearCacheProducts drops the staged batch.
func (h *Handler) HandleClearCacheProducts(c *fiber.Ctx) error {
	if err := h.service.ClearCacheProducts(c.UserContext()); err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgCacheCleared, nil)
}

// HandleGetProducts returns a filtered page of products.
func (h *Handler) HandleGetProducts(c *fiber.Ctx) error {
	var q models.ProductQuery
	if err := c.QueryParser(&q); err != nil {
		return response.Fail(c, response.New(http.StatusBadRequest, response.CodeValidation, "Invalid query parameters"))
	}
	if apiErr := response.Validate(q); apiErr != nil {
		return response.Fail(c, apiErr)
	}

	page, err := h.service.GetProducts(c.UserContext(), q)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgProductsListed, page)
}

// HandleGetProduct returns a single product.
func (h *Handler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Fail(c, response.New(http.StatusBadRequest, response.CodeValidation, "Product id must be a positive integer"))
	}

	detail, err := h.service.GetProductByID(c.UserContext(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgProductRetrieved, detail)
}

// HandleActivate activates or deactivates a product for the authenticated caller.
func (h *Handler) HandleActivate(c *fiber.Ctx) error {
	var req models.ActivateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Fail(c, response.MalformedJSONError)
	}
	if apiErr := response.Validate(req); apiErr != nil {
		return response.Fail(c, apiErr)
	}

	msg, err := h.service.ActivateDeactivateProduct(c.UserContext(), auth.UserID(c), req)
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msg, nil)
}

// HandleAutoRefresh reconciles the staging cache into the product store.
func (h *Handler) HandleAutoRefresh(c *fiber.Ctx) error {
	result, err := h.service.AutoRefreshProducts(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return response.OK(c, msgProductsRefreshed, result)
}

// fail maps a service error onto the response envelope.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if apiErr := toAPIError(err); apiErr != nil {
		return response.Fail(c, apiErr)
	}
	logger.WithRayID(h.logger, c).Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	return response.Fail(c, response.InternalServerError)
}

func toAPIError(err error) *response.APIError {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return response.New(http.StatusNotFound, CodeProductNotFound, "Product not found")
	case errors.Is(err, ErrUnauthorized):
		return response.New(http.StatusUnauthorized, response.CodeUnauthorized, "Authentication required")
	case errors.Is(err, ErrInvalidRequest):
		return response.New(http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, ErrUpstream):
		return response.New(http.StatusBadGateway, response.CodeUpstream, "Company service unavailable")
	default:
		return nil
	}
}
