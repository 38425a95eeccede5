package model

import (
	"time"

	"github.com/pr-poehali-dev/internal-employee-app/internal/validation"
)

// DefaultImageURL is stored when a product is created without an image.
const DefaultImageURL = "/placeholder.svg"

type Product struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url"`
	InStock     bool       `json:"in_stock"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

type ProductsResponse struct {
	Products []Product `json:"products"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

// ListProductsRequest carries no input.
type ListProductsRequest struct{}

func (r *ListProductsRequest) Validate() error {
	return nil
}

func (r *ListProductsRequest) IgnoresBody() bool { return true }

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	ImageURL    *string `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

func (r *CreateProductRequest) Validate() error {
	return validation.Struct(r)
}

// ToProduct applies the defaults for omitted optional fields.
func (r *CreateProductRequest) ToProduct() Product {
	p := Product{
		Name:        r.Name,
		Description: r.Description,
		ImageURL:    DefaultImageURL,
		InStock:     true,
	}
	if r.ImageURL != nil && *r.ImageURL != "" {
		p.ImageURL = *r.ImageURL
	}
	if r.InStock != nil {
		p.InStock = *r.InStock
	}
	return p
}

// ProductPatch lists the product fields an update may change. Nil means untouched.
type ProductPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	InStock     *bool   `json:"in_stock"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ImageURL == nil && p.InStock == nil
}

type UpdateProductRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	ProductPatch
}

func (r *UpdateProductRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.IsEmpty() {
		return validation.CustomValidationErrors{{Message: "No fields to update"}}
	}
	return nil
}
