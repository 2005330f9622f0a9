package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents the 'products' table.
type Product struct {
	ID                uint            `gorm:"column:id;primaryKey"`
	Name              string          `gorm:"column:name;size:255;not null"`
	Description       string          `gorm:"column:description;type:text"`
	ProductType       string          `gorm:"column:product_type;size:64"`
	CompanyCode       string          `gorm:"column:company_code;size:32;index"`
	CountryCode       string          `gorm:"column:country_code;size:8"`
	UnitOfMeasureCode string          `gorm:"column:unit_of_measure_code;size:32"`
	ProductSapNumber  string          `gorm:"column:product_sap_number;size:64;uniqueIndex"`
	Price             decimal.Decimal `gorm:"column:price;type:decimal(18,2)"`
	ProductStatusID   uint8           `gorm:"column:product_status_id;index"`
	ProductStatus     ProductStatus   `gorm:"foreignKey:ProductStatusID"`
	ProductImages     []ProductImage  `gorm:"foreignKey:ProductID"`
	ModifiedByUserID  *int64          `gorm:"column:modified_by_user_id"`
	DateCreated       time.Time       `gorm:"column:date_created;index"`
	DateModified      *time.Time      `gorm:"column:date_modified"`
	DateRefreshed     *time.Time      `gorm:"column:date_refreshed"`
}

// TableName overrides the table name.
func (Product) TableName() string {
	return "products"
}

// Status returns the catalog status of the product, falling back to the loaded association.
func (p *Product) Status() ProductStatus {
	if s, ok := StatusByID(p.ProductStatusID); ok {
		return s
	}
	return p.ProductStatus
}

// PrimaryImageURL returns the public url of the primary image, if any.
func (p *Product) PrimaryImageURL() *string {
	for _, img := range p.ProductImages {
		if img.IsPrimaryImage {
			url := img.PublicURL
			return &url
		}
	}
	return nil
}

// ProductImage represents the 'product_images' table.
type ProductImage struct {
	ID             uint   `gorm:"column:id;primaryKey"`
	ProductID      uint   `gorm:"column:product_id;index"`
	PublicURL      string `gorm:"column:public_url;size:1024"`
	IsPrimaryImage bool   `gorm:"column:is_primary_image"`
}

// TableName overrides the table name.
func (ProductImage) TableName() string {
	return "product_images"
}
