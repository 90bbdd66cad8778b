// AngelaMos | 2026
// dto.go

package category

import (
	"strings"
	"time"
)

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Normalize trims the name so a whitespace-only name fails "required".
func (r *CategoryRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CategoryEnvelope struct {
	Category CategoryResponse `json:"category"`
	Message  string           `json:"message,omitempty"`
}

func ToCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ToCategoryResponseList(categories []Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, ToCategoryResponse(&categories[i]))
	}
	return responses
}
