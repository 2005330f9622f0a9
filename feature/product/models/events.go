package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductUpdatedMessage is published when a product changes status.
type ProductUpdatedMessage struct {
	ProductID         uint        `json:"productId"`
	ProductSapNumber  string      `json:"productSapNumber"`
	Name              string      `json:"name"`
	Description       string      `json:"description"`
	UnitOfMeasureCode string      `json:"unitOfMeasureCode"`
	ProductStatus     NameAndCode `json:"productStatus"`
	DateCreated       time.Time   `json:"dateCreated"`
}

// ProductRefreshedMessage is one entry of the refresh batch.
type ProductRefreshedMessage struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uint            `json:"productId"`
	ProductSapNumber  string          `json:"productSapNumber"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	CompanyCode       string          `json:"companyCode"`
	CountryCode       string          `json:"countryCode"`
	UnitOfMeasureCode string          `json:"unitOfMeasureCode"`
	Price             decimal.Decimal `json:"price"`
	ProductStatus     NameAndCode     `json:"productStatus"`
	DateCreated       time.Time       `json:"dateCreated"`
	DateRefreshed     time.Time       `json:"dateRefreshed"`
}
