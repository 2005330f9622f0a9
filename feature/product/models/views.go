package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SortOrder selects the listing order.
type SortOrder int

const (
	SortDefault SortOrder = iota
	SortNameAscending
	SortNameDescending
)

// ProductQuery is the listing filter read from the query string.
type ProductQuery struct {
	CompanyCode       string    `query:"companyCode"`
	SearchKeyword     string    `query:"searchKeyword"`
	ProductStatusCode string    `query:"productStatusCode"`
	PageIndex         int       `query:"pageIndex" validate:"gte=0"`
	PageSize          int       `query:"pageSize" validate:"gte=0"`
	Sort              SortOrder `query:"sort" validate:"gte=0,lte=2"`
}

// ActivateRequest is the body of the activation endpoint.
type ActivateRequest struct {
	ProductID uint  `json:"productId" validate:"required"`
	Activate  *bool `json:"activate" validate:"required"`
}

// ProductResponse is the listing projection.
type ProductResponse struct {
	ProductID              uint        `json:"productId"`
	Name                   string      `json:"name"`
	Description            string      `json:"description"`
	ProductType            string      `json:"productType"`
	UnitOfMeasure          string      `json:"unitOfMeasure"`
	PrimaryProductImageURL *string     `json:"primaryProductImageUrl"`
	ProductStatus          NameAndCode `json:"productStatus"`
	DateModified           *time.Time  `json:"dateModified"`
}

// ProductImageResponse is an image of the detail projection.
type ProductImageResponse struct {
	PublicURL      string `json:"publicUrl"`
	IsPrimaryImage bool   `json:"isPrimaryImage"`
}

// ProductDetail is the single product projection.
type ProductDetail struct {
	ProductID        uint                   `json:"productId"`
	Name             string                 `json:"name"`
	Description      string                 `json:"description"`
	ProductType      string                 `json:"productType"`
	Price            decimal.Decimal        `json:"price"`
	ProductSapNumber string                 `json:"productSapNumber"`
	UnitOfMeasure    NameAndCode            `json:"unitOfMeasure"`
	ProductStatus    NameAndCode            `json:"productStatus"`
	ProductImages    []ProductImageResponse `json:"productImages"`
	DateModified     *time.Time             `json:"dateModified"`
}

// Page is a paginated listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	PageIndex  int   `json:"pageIndex"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
	TotalCount int64 `json:"totalCount"`
}

// ToResponse builds the listing projection.
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ProductID:              p.ID,
		Name:                   p.Name,
		Description:            p.Description,
		ProductType:            p.ProductType,
		UnitOfMeasure:          p.UnitOfMeasureCode,
		PrimaryProductImageURL: p.PrimaryImageURL(),
		ProductStatus:          p.Status().View(),
		DateModified:           p.DateModified,
	}
}

// ToDetail builds the detail projection.
func (p *Product) ToDetail() ProductDetail {
	images := make([]ProductImageResponse, 0, len(p.ProductImages))
	for _, img := range p.ProductImages {
		images = append(images, ProductImageResponse{PublicURL: img.PublicURL, IsPrimaryImage: img.IsPrimaryImage})
	}
	return ProductDetail{
		ProductID:        p.ID,
		Name:             p.Name,
		Description:      p.Description,
		ProductType:      p.ProductType,
		Price:            p.Price,
		ProductSapNumber: p.ProductSapNumber,
		UnitOfMeasure:    NameAndCode{Code: p.UnitOfMeasureCode, Name: p.UnitOfMeasureCode},
		ProductStatus:    p.Status().View(),
		ProductImages:    images,
		DateModified:     p.DateModified,
	}
}
