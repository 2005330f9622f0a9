package product

import (
	"fmt"
	"time"

	"product-catalog/core/companies"
	"product-catalog/feature/product/models"
)

// refreshAdapter maps staged SAP products onto persisted products.
type refreshAdapter struct {
	now time.Time
}

func (a refreshAdapter) Name() string {
	return "products"
}

func (a refreshAdapter) SourceKey(item models.SapProduct) string {
	return item.ProductSapNumber
}

func (a refreshAdapter) TargetKey(item *models.Product) string {
	return item.ProductSapNumber
}

func (a refreshAdapter) Create(item models.SapProduct) (*models.Product, error) {
	status, ok := models.ResolveStatus(item.ProductStatus)
	if !ok {
		return nil, fmt.Errorf("unknown product status %q", item.ProductStatus)
	}

	refreshed := a.now
	p := &models.Product{DateCreated: a.now}
	apply(p, item, status, &refreshed)
	return p, nil
}

func (a refreshAdapter) Update(target *models.Product, item models.SapProduct) (*models.Product, error) {
	status, ok := models.ResolveStatus(item.ProductStatus)
	if !ok {
		return nil, fmt.Errorf("unknown product status %q", item.ProductStatus)
	}

	refreshed := a.now
	apply(target, item, status, &refreshed)
	return target, nil
}

func apply(p *models.Product, item models.SapProduct, status models.ProductStatus, refreshed *time.Time) {
	p.Name = item.Name
	p.Description = item.Description
	p.ProductType = item.ProductType
	p.CompanyCode = item.CompanyCode
	p.CountryCode = item.CountryCode
	p.UnitOfMeasureCode = item.UnitOfMeasureCode
	p.ProductSapNumber = item.ProductSapNumber
	p.Price = item.Price
	p.ProductStatusID = status.ID
	p.ProductStatus = status
	p.DateRefreshed = refreshed
}

// byCompany keeps the staged products whose company is in the roster, grouped in
// roster order. Company codes match exactly.
func byCompany(roster []companies.Company, staged []models.SapProduct) []models.SapProduct {
	grouped := make(map[string][]models.SapProduct, len(roster))
	for _, c := range roster {
		grouped[c.Code] = nil
	}
	for _, item := range staged {
		if _, ok := grouped[item.CompanyCode]; ok {
			grouped[item.CompanyCode] = append(grouped[item.CompanyCode], item)
		}
	}

	var out []models.SapProduct
	seen := make(map[string]struct{}, len(roster))
	for _, c := range roster {
		if _, dup := seen[c.Code]; dup {
			continue
		}
		seen[c.Code] = struct{}{}
		out = append(out, grouped[c.Code]...)
	}
	return out
}

func sapNumbers(items []models.SapProduct) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductSapNumber]; ok {
			continue
		}
		seen[item.ProductSapNumber] = struct{}{}
		out = append(out, item.ProductSapNumber)
	}
	return out
}
