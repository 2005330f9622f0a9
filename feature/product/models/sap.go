package models

import "github.com/shopspring/decimal"

// SapProduct is a product record as delivered by the SAP integration.
// It lives in the staging cache until reconciled.
type SapProduct struct {
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	ProductType       string          `json:"productType"`
	ProductStatus     string          `json:"productStatus"`
	CountryCode       string          `json:"countryCode"`
	CompanyCode       string          `json:"companyCode" validate:"required"`
	UnitOfMeasureCode string          `json:"unitOfMeasureCode"`
	ProductSapNumber  string          `json:"productSapNumber" validate:"required"`
	Price             decimal.Decimal `json:"price"`
}

// SapNumber is the staging deduplication key.
func SapNumber(p SapProduct) string {
	return p.ProductSapNumber
}
