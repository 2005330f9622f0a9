package product

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/feature/product/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists products.
type Repository interface {
	// List returns one page of products matching filter, with the total match count.
	List(ctx context.Context, filter Filter, sort models.SortOrder, page Pagination) ([]models.Product, int64, error)
	// FindByID returns the product or ErrProductNotFound.
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	// FindBySapNumbers returns the products whose SAP number is in sapNumbers.
	FindBySapNumbers(ctx context.Context, sapNumbers []string) ([]*models.Product, error)
	// Save updates a single product.
	Save(ctx context.Context, p *models.Product) error
	// Commit inserts creates and updates updates in one transaction.
	Commit(ctx context.Context, creates, updates []*models.Product) error
	// Migrate creates the tables and seeds the status catalog.
	Migrate(ctx context.Context) error
}

// GormRepository is the gorm backed Repository.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context, filter Filter, sort models.SortOrder, page Pagination) ([]models.Product, int64, error) {
	base := filter.Predicates().Apply(r.db.WithContext(ctx).Model(&models.Product{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []models.Product{}
	if total == 0 {
		return products, 0, nil
	}

	err := base.Session(&gorm.Session{}).
		Preload("ProductStatus").
		Preload("ProductImages").
		Order(orderBy(sort)).
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).
		Preload("ProductStatus").
		Preload("ProductImages").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	return &p, nil
}

func (r *GormRepository) FindBySapNumbers(ctx context.Context, sapNumbers []string) ([]*models.Product, error) {
	products := []*models.Product{}
	if len(sapNumbers) == 0 {
		return products, nil
	}

	err := r.db.WithContext(ctx).
		Where("product_sap_number IN ?", sapNumbers).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load products by sap number: %w", err)
	}
	return products, nil
}

func (r *GormRepository) Save(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("failed to save product %d: %w", p.ID, err)
	}
	return nil
}

func (r *GormRepository) Commit(ctx context.Context, creates, updates []*models.Product) error {
	if len(creates) == 0 && len(updates) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(creates) > 0 {
			if err := tx.Omit(clause.Associations).Create(&creates).Error; err != nil {
				return fmt.Errorf("failed to insert products: %w", err)
			}
		}
		for _, p := range updates {
			if err := tx.Omit(clause.Associations).Save(p).Error; err != nil {
				return fmt.Errorf("failed to update product %s: %w", p.ProductSapNumber, err)
			}
		}
		return nil
	})
}

func (r *GormRepository) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.ProductStatus{}, &models.Product{}, &models.ProductImage{}); err != nil {
		return fmt.Errorf("failed to migrate product tables: %w", err)
	}

	statuses := append([]models.ProductStatus(nil), models.Statuses...)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return fmt.Errorf("failed to seed product statuses: %w", err)
	}
	return nil
}
