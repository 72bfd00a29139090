package dto

import (
	"time"

	"github.com/paramreg/registry/internal/model"
)

// ParameterRequest creates a parameter. Category is the slug of the owning
// category.
type ParameterRequest struct {
	Default     string `json:"default" validate:"required"`
	Name        string `json:"name" validate:"required,min=5,max=50"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description,omitempty" validate:"omitempty,min=10,max=253"`
}

type ParameterUpdateRequest struct {
	Value       *string `json:"value,omitempty"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=10,max=253"`
}

func (r ParameterUpdateRequest) IsEmpty() bool {
	return r.Value == nil && r.Description == nil
}

// ParameterFilter is the query of GET /parameters. Category is a category slug.
type ParameterFilter struct {
	Name     string `form:"name" json:"name"`
	Category string `form:"category" json:"category"`
}

// SlugParam is the path of the find-by-slug endpoints.
type SlugParam struct {
	Slug string `uri:"slug" binding:"required,min=5,max=50"`
}

// IDParam is the path of the find-by-id endpoints.
type IDParam struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type ParameterResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Default     string     `json:"default"`
	Value       string     `json:"value"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeleteAt    *time.Time `json:"delete_at"`
}

func NewParameterResponse(p *model.Parameter) ParameterResponse {
	return ParameterResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Default:     p.Default,
		Value:       p.Value,
		Description: p.Description,
		Category:    p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeleteAt:    p.DeleteAt,
	}
}

func NewParameterResponses(parameters []model.Parameter) []ParameterResponse {
	out := make([]ParameterResponse, 0, len(parameters))
	for i := range parameters {
		out = append(out, NewParameterResponse(&parameters[i]))
	}
	return out
}
