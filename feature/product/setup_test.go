package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"product-catalog/core/companies"
	"product-catalog/core/database"
	"product-catalog/core/messaging/mocks"
	"product-catalog/core/staging"
	"product-catalog/feature/product/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type stubCompanies struct {
	list  []companies.Company
	err   error
	calls int
}

func (s *stubCompanies) ListCompanies(ctx context.Context) ([]companies.Company, error) {
	s.calls++
	return s.list, s.err
}

func setupTestDB(t *testing.T) (*gorm.DB, *GormRepository) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	repo := NewRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return db, repo
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

type testEnv struct {
	db        *gorm.DB
	repo      Repository
	store     *staging.MemoryStore[models.SapProduct]
	companies *stubCompanies
	publisher *mocks.Publisher
	service   *Service
}

var testTopics = Topics{Updated: "products.product-updated", Refreshed: "products.product-refreshed"}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, repo := setupTestDB(t)
	return newTestEnvWithRepo(t, db, repo)
}

func newTestEnvWithRepo(t *testing.T, db *gorm.DB, repo Repository) *testEnv {
	t.Helper()
	env := &testEnv{
		db:        db,
		repo:      repo,
		store:     staging.NewMemoryStore(models.SapNumber, staging.DefaultPolicy),
		companies: &stubCompanies{list: []companies.Company{{Code: "C1", Name: "Acme", CountryCode: "NG"}}},
		publisher: new(mocks.Publisher),
	}
	env.service = NewService(Deps{
		Repository: repo,
		Staging:    env.store,
		Companies:  env.companies,
		Publisher:  env.publisher,
		Topics:     testTopics,
		Logger:     zap.NewNop(),
	})
	env.service.now = func() time.Time { return testNow }
	return env
}

func sapProduct(sap, company string, price int64) models.SapProduct {
	return models.SapProduct{
		Name:              "Product " + sap,
		Description:       "Description of " + sap,
		ProductType:       "Finished",
		ProductStatus:     "Active",
		CountryCode:       "NG",
		CompanyCode:       company,
		UnitOfMeasureCode: "BAG",
		ProductSapNumber:  sap,
		Price:             decimal.NewFromInt(price),
	}
}

// seedProducts inserts n active products of company C1 with increasing creation dates.
func seedProducts(t *testing.T, db *gorm.DB, n int) []*models.Product {
	t.Helper()
	products := make([]*models.Product, 0, n)
	for i := 1; i <= n; i++ {
		products = append(products, &models.Product{
			Name:              fmt.Sprintf("Product %02d", i),
			Description:       fmt.Sprintf("Description %02d", i),
			CompanyCode:       "C1",
			CountryCode:       "NG",
			UnitOfMeasureCode: "BAG",
			ProductSapNumber:  fmt.Sprintf("SAP-%03d", i),
			Price:             decimal.NewFromInt(int64(i)),
			ProductStatusID:   models.StatusActive,
			DateCreated:       testNow.Add(time.Duration(i) * time.Minute),
		})
	}
	require.NoError(t, db.Omit("ProductStatus", "ProductImages").Create(&products).Error)
	return products
}
