// AngelaMos | 2026
// dto.go

package product

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type ProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=200"`
	Description *string         `json:"description" validate:"omitempty,max=2000"`
	Price       decimal.Decimal `json:"price"       validate:"required,gt=0"`
	Stock       *int            `json:"stock"       validate:"required,gte=0"`
	CategoryID  string          `json:"categoryId"  validate:"required,uuid"`
	Image       *string         `json:"image"       validate:"omitempty,max=500"`
}

func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.CategoryID = strings.TrimSpace(r.CategoryID)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
	if r.Image != nil && strings.TrimSpace(*r.Image) == "" {
		r.Image = nil
	}
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description *string          `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	CategoryID  string           `json:"categoryId"`
	Image       *string          `json:"image"`
	Category    *CategorySummary `json:"category,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Pagination core.Pagination   `json:"pagination"`
}

type ProductEnvelope struct {
	Product ProductResponse `json:"product"`
	Message string          `json:"message,omitempty"`
}

// ListSchema is every field the product listing can sort or filter on.
var ListSchema = query.Schema{
	Sorts: map[string]string{
		"name":      "p.name",
		"price":     "p.price",
		"stock":     "p.stock",
		"createdAt": "p.created_at",
	},
	Filters: map[string]string{
		"categoryId": "p.category_id::text",
	},
	Search:           []string{"p.name", "p.description"},
	DefaultSort:      "createdAt",
	DefaultDirection: query.Desc,
}

func ToProductResponse(p *Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category.ID != nil {
		summary := &CategorySummary{ID: *p.Category.ID}
		if p.Category.Name != nil {
			summary.Name = *p.Category.Name
		}
		resp.Category = summary
	}
	return resp
}

func ToProductResponseList(products []Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
