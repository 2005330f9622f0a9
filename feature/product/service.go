package product

import (
	"context"
	"fmt"
	"time"

	"product-catalog/core/companies"
	"product-catalog/core/messaging"
	"product-catalog/core/metrics"
	"product-catalog/core/reconcile"
	"product-catalog/core/staging"
	"product-catalog/feature/product/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	msgProductsStaged    = "Product Successfully added to Memory"
	msgCacheFetched      = "Cache Products Successfully fetched"
	msgCacheCleared      = "Cache Products Successfully cleared"
	msgProductsListed    = "Products successfully retrieved"
	msgProductRetrieved  = "Product successfully retrieved"
	msgProductActivated  = "Product successfully activated"
	msgProductDeactivate = "Product successfully deactivated"
	msgProductsRefreshed = "Products successfully refreshed"
)

// Topics names the topics the service publishes to.
type Topics struct {
	Updated   string
	Refreshed string
}

// Deps are the collaborators of the Service.
type Deps struct {
	Repository Repository
	Staging    staging.Store[models.SapProduct]
	Companies  companies.Lister
	Publisher  messaging.Publisher
	// Archive is optional; nil disables staging snapshots.
	Archive        *Archive
	Topics         Topics
	Logger         *zap.Logger
	PublishTimeout time.Duration
}

// RefreshOptions controls a reconciliation run.
type RefreshOptions struct {
	DryRun bool
}

// RefreshResult summarizes a reconciliation run.
type RefreshResult struct {
	Created   int              `json:"created"`
	Updated   int              `json:"updated"`
	Skipped   []reconcile.Skip `json:"skipped"`
	Published bool             `json:"published"`
	DryRun    bool             `json:"dryRun"`
}

// Service implements the product operations.
type Service struct {
	repo           Repository
	staging        staging.Store[models.SapProduct]
	companies      companies.Lister
	publisher      messaging.Publisher
	archive        *Archive
	topics         Topics
	logger         *zap.Logger
	publishTimeout time.Duration
	now            func() time.Time
	refreshGroup   singleflight.Group
}

// NewService creates a product service.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := deps.PublishTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		repo:           deps.Repository,
		staging:        deps.Staging,
		companies:      deps.Companies,
		publisher:      deps.Publisher,
		archive:        deps.Archive,
		topics:         deps.Topics,
		logger:         logger,
		publishTimeout: timeout,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// AddProducts merges batch into the staging cache and returns the merged batch.
func (s *Service) AddProducts(ctx context.Context, batch []models.SapProduct) ([]models.SapProduct, error) {
	merged, err := s.staging.Merge(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to stage products: %w", err)
	}

	if s.archive != nil {
		if name, err := s.archive.Snapshot(ctx, merged); err != nil {
			s.logger.Warn("Failed to archive staging batch", zap.Error(err))
		} else {
			s.logger.Debug("Staging batch archived", zap.String("object", name))
		}
	}
	return merged, nil
}

// GetCacheProducts returns the staged batch.
func (s *Service) GetCacheProducts(ctx context.Context) ([]models.SapProduct, error) {
	items, err := s.staging.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read staged products: %w", err)
	}
	return items, nil
}

// ClearCacheProducts drops the staged batch.
func (s *Service) ClearCacheProducts(ctx context.Context) error {
	if err := s.staging.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear staged products: %w", err)
	}
	return nil
}

// RestoreStaging merges the newest archived snapshot back into the staging cache.
func (s *Service) RestoreStaging(ctx context.Context) (int, error) {
	if s.archive == nil {
		return 0, nil
	}

	items, name, err := s.archive.Latest(ctx)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, nil
	}

	merged, err := s.staging.Merge(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("failed to restore staging batch: %w", err)
	}
	s.logger.Info("Staging batch restored", zap.String("object", name), zap.Int("count", len(merged)))
	return len(merged), nil
}

// GetProducts returns one page of persisted products.
func (s *Service) GetProducts(ctx context.Context, q models.ProductQuery) (*models.Page[models.ProductResponse], error) {
	page := NewPagination(q.PageIndex, q.PageSize)
	filter := Filter{
		CompanyCode:   q.CompanyCode,
		SearchKeyword: q.SearchKeyword,
		StatusCode:    q.ProductStatusCode,
	}

	products, total, err := s.repo.List(ctx, filter, q.Sort, page)
	if err != nil {
		return nil, err
	}

	items := make([]models.ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, products[i].ToResponse())
	}

	return &models.Page[models.ProductResponse]{
		Items:      items,
		PageIndex:  page.Index,
		PageSize:   page.Size,
		TotalPages: page.TotalPages(total),
		TotalCount: total,
	}, nil
}

// GetProductByID returns the detail projection or ErrProductNotFound.
func (s *Service) GetProductByID(ctx context.Context, id uint) (*models.ProductDetail, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := p.ToDetail()
	return &detail, nil
}

// ActivateDeactivateProduct moves a product to Active or InActive on behalf of userID
// and publishes a product-updated event. It returns the success message.
func (s *Service) ActivateDeactivateProduct(ctx context.Context, userID int64, req models.ActivateRequest) (string, error) {
	if userID <= 0 {
		return "", ErrUnauthorized
	}
	if req.Activate == nil {
		return "", fmt.Errorf("%w: activate is required", ErrInvalidRequest)
	}

	p, err := s.repo.FindByID(ctx, req.ProductID)
	if err != nil {
		return "", err
	}

	snapshot := *p
	target := models.TargetStatus(*req.Activate)
	now := s.now()
	uid := userID

	p.ProductStatusID = target.ID
	p.ProductStatus = target
	p.DateModified = &now
	p.ModifiedByUserID = &uid

	if err := s.repo.Save(ctx, p); err != nil {
		return "", err
	}

	s.publish(ctx, s.topics.Updated, updatedMessage(snapshot, target))

	s.logger.Info("Product status changed",
		zap.Uint("product_id", p.ID),
		zap.String("status", target.Code),
		zap.Int64("user_id", userID),
	)

	if *req.Activate {
		return msgProductActivated, nil
	}
	return msgProductDeactivate, nil
}

// AutoRefreshProducts reconciles the staging cache into the product store.
// Concurrent calls share a single run, detached from the cancellation of whichever
// caller started it.
func (s *Service) AutoRefreshProducts(ctx context.Context) (*RefreshResult, error) {
	runCtx := context.WithoutCancel(ctx)
	v, err, shared := s.refreshGroup.Do("refresh", func() (any, error) {
		return s.Refresh(runCtx, RefreshOptions{})
	})
	if shared {
		s.logger.Debug("Refresh run shared with a concurrent caller")
	}
	if err != nil {
		return nil, err
	}
	return v.(*RefreshResult), nil
}

// Refresh runs one reconciliation pass.
func (s *Service) Refresh(ctx context.Context, opts RefreshOptions) (*RefreshResult, error) {
	result := &RefreshResult{Skipped: []reconcile.Skip{}, DryRun: opts.DryRun}

	roster, err := s.companies.ListCompanies(ctx)
	if err != nil {
		metrics.RecordRefresh("failure")
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	staged, err := s.staging.Get(ctx)
	if err != nil {
		metrics.RecordRefresh("failure")
		return nil, fmt.Errorf("failed to read staged products: %w", err)
	}

	source := byCompany(roster, staged)
	if len(source) == 0 {
		metrics.RecordRefresh("noop")
		s.logger.Info("Nothing to refresh", zap.Int("staged", len(staged)), zap.Int("companies", len(roster)))
		return result, nil
	}

	existing, err := s.repo.FindBySapNumbers(ctx, sapNumbers(source))
	if err != nil {
		metrics.RecordRefresh("failure")
		return nil, err
	}

	plan := reconcile.BuildPlan[models.SapProduct, *models.Product](refreshAdapter{now: s.now()}, source, existing)
	for _, skip := range plan.Skipped {
		s.logger.Warn("Staged product skipped", zap.String("sap_number", skip.Key), zap.String("reason", skip.Reason))
	}
	result.Skipped = append(result.Skipped, plan.Skipped...)
	result.Created = plan.Summary.Creates
	result.Updated = plan.Summary.Updates

	if _, err := reconcile.ApplyPlan[*models.Product](ctx, s.repo, plan, reconcile.ReconcileOptions{DryRun: opts.DryRun}); err != nil {
		metrics.RecordRefresh("failure")
		return nil, err
	}

	metrics.RecordRefreshItems("skip", len(plan.Skipped))
	if opts.DryRun || plan.Empty() {
		metrics.RecordRefresh("noop")
		return result, nil
	}

	metrics.RecordRefresh("success")
	metrics.RecordRefreshItems("create", plan.Summary.Creates)
	metrics.RecordRefreshItems("update", plan.Summary.Updates)

	creates, updates := plan.Targets()
	messages, err := refreshedMessages(append(creates, updates...))
	if err != nil {
		s.logger.Error("Failed to build refresh messages", zap.Error(err))
		return result, nil
	}
	result.Published = s.publish(ctx, s.topics.Refreshed, messages)

	s.logger.Info("Products refreshed",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}
