package product

import (
	"context"
	"testing"

	"product-catalog/feature/product/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ListPagination(t *testing.T) {
	db, repo := setupTestDB(t)
	seedProducts(t, db, 25)

	products, total, err := repo.List(context.Background(), Filter{}, models.SortDefault, NewPagination(2, 10))
	require.NoError(t, err)

	assert.Equal(t, int64(25), total)
	require.Len(t, products, 10)
	// Newest first: page 2 holds products 15 down to 6.
	assert.Equal(t, "SAP-015", products[0].ProductSapNumber)
	assert.Equal(t, "SAP-006", products[9].ProductSapNumber)
	assert.Equal(t, "Active", products[0].ProductStatus.Code)
}

func TestRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestDB(t)
	products := seedProducts(t, db, 5)

	products[0].ProductStatusID = models.StatusInActive
	products[1].CompanyCode = "C2"
	products[2].Description = "Premium cement"
	for _, p := range products[:3] {
		require.NoError(t, repo.Save(ctx, p))
	}

	t.Run("default status is active", func(t *testing.T) {
		_, total, err := repo.List(ctx, Filter{}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
	})

	t.Run("explicit status", func(t *testing.T) {
		list, total, err := repo.List(ctx, Filter{StatusCode: "InActive"}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "SAP-001", list[0].ProductSapNumber)
	})

	t.Run("unknown status matches nothing", func(t *testing.T) {
		list, total, err := repo.List(ctx, Filter{StatusCode: "Archived"}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)
	})

	t.Run("company", func(t *testing.T) {
		list, total, err := repo.List(ctx, Filter{CompanyCode: "C2"}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "SAP-002", list[0].ProductSapNumber)
	})

	t.Run("search description", func(t *testing.T) {
		list, _, err := repo.List(ctx, Filter{SearchKeyword: "cement"}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "SAP-003", list[0].ProductSapNumber)
	})

	t.Run("search sap number", func(t *testing.T) {
		list, _, err := repo.List(ctx, Filter{SearchKeyword: "SAP-005"}, models.SortDefault, NewPagination(1, 10))
		require.NoError(t, err)
		require.Len(t, list, 1)
	})
}

func TestRepository_ListSort(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestDB(t)
	seedProducts(t, db, 3)

	list, _, err := repo.List(ctx, Filter{}, models.SortNameAscending, NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, "Product 01", list[0].Name)

	list, _, err = repo.List(ctx, Filter{}, models.SortNameDescending, NewPagination(1, 10))
	require.NoError(t, err)
	assert.Equal(t, "Product 03", list[0].Name)
}

func TestRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestDB(t)
	products := seedProducts(t, db, 1)

	require.NoError(t, db.Create(&models.ProductImage{ProductID: products[0].ID, PublicURL: "https://cdn/a.png", IsPrimaryImage: true}).Error)

	p, err := repo.FindByID(ctx, products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "SAP-001", p.ProductSapNumber)
	assert.Len(t, p.ProductImages, 1)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1)))

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRepository_Commit(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestDB(t)
	existing := seedProducts(t, db, 1)

	existing[0].Name = "Renamed"
	created := &models.Product{Name: "New", ProductSapNumber: "SAP-NEW", ProductStatusID: models.StatusActive, DateCreated: testNow}

	require.NoError(t, repo.Commit(ctx, []*models.Product{created}, existing))
	assert.NotZero(t, created.ID)

	found, err := repo.FindBySapNumbers(ctx, []string{"SAP-001", "SAP-NEW", "SAP-MISSING"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	p, err := repo.FindByID(ctx, existing[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Name)
}

func TestRepository_CommitRollsBack(t *testing.T) {
	ctx := context.Background()
	db, repo := setupTestDB(t)
	seedProducts(t, db, 1)

	dup := &models.Product{Name: "Dup", ProductSapNumber: "SAP-001", ProductStatusID: models.StatusActive, DateCreated: testNow}
	fresh := &models.Product{Name: "Fresh", ProductSapNumber: "SAP-FRESH", ProductStatusID: models.StatusActive, DateCreated: testNow}

	err := repo.Commit(ctx, []*models.Product{fresh, dup}, nil)
	assert.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_MigrateIsIdempotent(t *testing.T) {
	db, repo := setupTestDB(t)
	require.NoError(t, repo.Migrate(context.Background()))

	var statuses []models.ProductStatus
	require.NoError(t, db.Order("id").Find(&statuses).Error)
	assert.Equal(t, models.Statuses, statuses)
}
