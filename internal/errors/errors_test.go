package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"validation", ErrValidation, http.StatusBadRequest},
		{"invalid id", ErrInvalidID, http.StatusBadRequest},
		{"duplicate", ErrCategoryExists, http.StatusBadRequest},
		{"category not found", ErrCategoryNotFound, http.StatusNotFound},
		{"referenced category", ErrReferencedCategory, http.StatusNotFound},
		{"parameter not found", ErrParameterNotFound, http.StatusNotFound},
		{"internal", WrapError(ErrInternal, errors.New("boom")), http.StatusInternalServerError},
		{"unavailable", ErrServiceUnavailable, http.StatusServiceUnavailable},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToHTTPStatus(tc.err))
		})
	}
}

func TestWrappedErrorsKeepIdentity(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("find category: %w", WrapError(ErrCategoryNotFound, cause))

	assert.True(t, errors.Is(wrapped, ErrCategoryNotFound))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, errors.Is(wrapped, ErrParameterNotFound))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsDuplicate(wrapped))
	assert.Equal(t, "Category not found", GetErrorMessage(wrapped))
}

func TestKindClassification(t *testing.T) {
	assert.True(t, IsDuplicate(ErrCategoryExists))
	assert.True(t, IsValidation(WithDetails(ErrValidation, "name is required")))
	assert.False(t, IsNotFound(errors.New("other")))
	assert.False(t, IsDomainError(errors.New("other")))
}

func TestGetErrorDetails(t *testing.T) {
	err := WithDetails(ErrValidation, "name is required", "description is too short")
	assert.Equal(t, []string{"name is required", "description is too short"}, GetErrorDetails(err))
	assert.Equal(t, []string{"Category not found"}, GetErrorDetails(ErrCategoryNotFound))
	assert.Equal(t, []string{}, GetErrorDetails(nil))
}
