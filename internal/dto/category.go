package dto

import (
	"time"

	"github.com/paramreg/registry/internal/model"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Description string `json:"description" validate:"required,min=20,max=70"`
}

// CategoryUpdateRequest carries only the fields the client sent.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=20,max=70"`
}

func (r CategoryUpdateRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil
}

type CategoryResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Parameters  []string   `json:"parameters"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeleteAt    *time.Time `json:"delete_at"`
}

func NewCategoryResponse(c *model.Category) CategoryResponse {
	params := []string(c.Parameters)
	if params == nil {
		params = []string{}
	}
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Parameters:  params,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		DeleteAt:    c.DeleteAt,
	}
}

func NewCategoryResponses(categories []model.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, NewCategoryResponse(&categories[i]))
	}
	return out
}
